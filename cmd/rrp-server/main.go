// Command rrp-server runs the reverse proxy server: it accepts BindTcp and
// AcceptTcpConnection requests from authenticated clients and shuttles TCP
// traffic between them. Grounded on original_source/server/src/main.rs.
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"rrp.dev/config"
	"rrp.dev/internal/rlog"
	"rrp.dev/internal/rpaths"
	"rrp.dev/internal/rpcproto"
	"rrp.dev/serverauth"
	"rrp.dev/status"
	"rrp.dev/tlsconfig"
	"rrp.dev/tunnel"
)

var (
	ip         = flag.String("ip", "", "network ip to listen on, overriding server.toml")
	port       = flag.Uint("port", 0, "network port to listen on, overriding server.toml")
	statusAddr = flag.String("status-addr", "localhost:8080", "address to serve the /debug/status endpoint on, empty to disable")
	logLevel   = flag.String("log", "info", "log level: debug, info, error, disabled")
)

func main() {
	flag.Parse()
	if lvl, ok := parseLogLevel(*logLevel); ok {
		rlog.SetLevel(lvl)
	} else {
		rlog.Error.Printf("unknown -log level %q, keeping default", *logLevel)
	}

	dir, err := rpaths.ConfigDir()
	if err != nil {
		rlog.Error.Fatalf("failed to resolve the config directory: %v", err)
	}

	serverConfig, err := config.LoadServerConfig(dir, *ip, uint16(*port))
	if err != nil {
		rlog.Error.Fatalf("failed to load server.toml: %v", err)
	}

	allowlist, err := config.LoadAllowlist(dir)
	if err != nil {
		rlog.Error.Fatalf("failed to load clients.toml: %v", err)
	}

	identity, err := tlsconfig.LoadOrGenerateServerIdentity(dir)
	if err != nil {
		rlog.Error.Fatalf("failed to set up the tls identity: %v", err)
	}

	engine := tunnel.NewEngine()
	tracker := status.NewTracker()
	engine.SetTracker(tracker)

	if *statusAddr != "" {
		go serveStatus(*statusAddr, engine, allowlist, tracker)
	}

	creds := credentials.NewTLS(&tls.Config{Certificates: []tls.Certificate{identity.Certificate}})
	grpcServer := grpc.NewServer(
		grpc.Creds(creds),
		grpc.StreamInterceptor(serverauth.StreamInterceptor(allowlist)),
	)
	rpcproto.RegisterReverseProxyServer(grpcServer, engine)

	addr := net.JoinHostPort(serverConfig.IP.String(), fmt.Sprintf("%d", serverConfig.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		rlog.Error.Fatalf("failed to listen on %s: %v", addr, err)
	}

	rlog.Info.Printf("server listening on address: %s", addr)
	if err := grpcServer.Serve(listener); err != nil {
		rlog.Error.Fatalf("failed to start the server: %v", err)
	}
}

func serveStatus(addr string, engine *tunnel.Engine, allowlist *config.Allowlist, tracker *status.PortTracker) {
	reporter := statusReporter{tracker: tracker, allowlist: allowlist}
	server := &http.Server{
		Addr:              addr,
		Handler:           status.Handler(reporter, time.Now()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		rlog.Error.Printf("status endpoint exited: %v", err)
	}
}

type statusReporter struct {
	tracker   *status.PortTracker
	allowlist *config.Allowlist
}

func (r statusReporter) ActivePorts() map[uint16]int { return r.tracker.ActivePorts() }
func (r statusReporter) AllowedClientCount() int      { return r.allowlist.Count() }

func parseLogLevel(s string) (rlog.Level, bool) {
	switch s {
	case "debug":
		return rlog.DebugLevel, true
	case "info":
		return rlog.InfoLevel, true
	case "error":
		return rlog.ErrorLevel, true
	case "disabled":
		return rlog.DisabledLevel, true
	default:
		return 0, false
	}
}
