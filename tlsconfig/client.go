package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"

	"rrp.dev/internal/rerr"
)

// ClientConfig builds the *tls.Config a client dials a server with: its
// trust root is exactly the one certificate pinned for that server (no
// system root pool, matching tonic::transport::ClientTlsConfig's
// ca_certificate), and the handshake must present certificateHostname,
// independent of the address actually dialed. Grounded on
// original_source/client/src/server.rs's open_grpc_channel and
// grpc/auth/client.go's RootCAs-pinning pattern.
func ClientConfig(certificatePEM []byte, certificateHostname string) (*tls.Config, error) {
	const op = "tlsconfig.ClientConfig"

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(certificatePEM) {
		return nil, rerr.E(op, rerr.Config, rerr.Errorf("failed to parse the server certificate"))
	}

	return &tls.Config{
		RootCAs:    pool,
		ServerName: certificateHostname,
		MinVersion: tls.VersionTLS12,
	}, nil
}
