// Package tlsconfig builds the TLS identities and trust configuration the
// server and client halves of the tunnel need. The server loads or
// generates a self-signed identity (original_source/server/src/tls.rs); the
// client pins that identity's certificate and verifies the configured
// certificate hostname (original_source/client/src/server.rs), following
// the RootCAs-pinning pattern of grpc/auth/client.go's NewClient.
package tlsconfig

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"rrp.dev/internal/rerr"
	"rrp.dev/internal/rlog"
)

const (
	serverKeyFileName  = "server.key"
	serverCertFileName = "server.pem"

	selfSignedValidity = 100 * 365 * 24 * time.Hour
)

// DefaultAltNames is the set of subject alternative names given to a
// freshly generated self-signed certificate. The first entry doubles as the
// default certificate hostname a client assumes when "rrp add" isn't given
// one explicitly.
var DefaultAltNames = []string{"localhost"}

// Identity is a loaded or generated server TLS identity, ready to be handed
// to a grpc.Server via credentials.NewTLS.
type Identity struct {
	Certificate tls.Certificate
	// PEM is the encoded certificate, suitable for printing to the
	// operator or bundling into a "rrp add" command to run on a client.
	PEM []byte
}

// LoadOrGenerateServerIdentity reads server.key/server.pem from dir. If
// either is missing, it generates a new self-signed identity and writes
// both files so that restarts reuse it, exactly
// original_source/server/src/tls.rs's load_server_identity.
func LoadOrGenerateServerIdentity(dir string) (*Identity, error) {
	const op = "tlsconfig.LoadOrGenerateServerIdentity"
	keyPath := filepath.Join(dir, serverKeyFileName)
	certPath := filepath.Join(dir, serverCertFileName)

	keyPEM, keyErr := os.ReadFile(keyPath)
	certPEM, certErr := os.ReadFile(certPath)
	if keyErr != nil || certErr != nil {
		var err error
		keyPEM, certPEM, err = generateSelfSigned()
		if err != nil {
			return nil, rerr.E(op, rerr.Internal, rerr.Errorf("failed to generate self-signed tls key: %w", err))
		}
		if err := os.WriteFile(keyPath, keyPEM, 0o600); err != nil {
			return nil, rerr.E(op, rerr.Io, err)
		}
		if err := os.WriteFile(certPath, certPEM, 0o644); err != nil {
			return nil, rerr.E(op, rerr.Io, err)
		}
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, rerr.E(op, rerr.Config, rerr.Errorf("failed to parse tls identity: %w", err))
	}

	rlog.Info.Printf("%s: the used tls certificate can be found at: %s", op, certPath)
	return &Identity{Certificate: cert, PEM: certPEM}, nil
}

func generateSelfSigned() (keyPEM, certPEM []byte, err error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, nil, err
	}

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: DefaultAltNames[0]},
		DNSNames:     DefaultAltNames,
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(selfSignedValidity),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IsCA:         true,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &priv.PublicKey, priv)
	if err != nil {
		return nil, nil, err
	}
	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return nil, nil, err
	}

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return keyPEM, certPEM, nil
}
