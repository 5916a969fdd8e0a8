// Package config holds the three TOML-backed stores the CLI surface and the
// two binaries read and write: the server's own listen address
// (server.toml), the server's client allow-list (clients.toml), and the
// client's list of known servers (servers.toml). Grounded on
// original_source/server/src/config.rs, original_source/server/src/auth.rs,
// and original_source/client/src/server.rs.
package config

import (
	"net"
	"os"

	"github.com/BurntSushi/toml"

	"rrp.dev/internal/rerr"
)

const serverConfigFileName = "server.toml"

// ServerConfig is the external configuration the server binary needs: the
// address to listen on.
type ServerConfig struct {
	IP   net.IP
	Port uint16
}

// serverConfigFile is the on-disk shape of server.toml.
type serverConfigFile struct {
	IP   string `toml:"ip"`
	Port uint16 `toml:"port"`
}

const (
	defaultIP   = "0.0.0.0"
	defaultPort = 3600
)

// LoadServerConfig reads server.toml from dir, writing a default file if
// none exists, then lets a non-empty ipOverride/non-zero portOverride win
// over the file. This mirrors the original's Config::parse: file defaults,
// then CLI overrides (original_source/server/src/config.rs).
func LoadServerConfig(dir, ipOverride string, portOverride uint16) (*ServerConfig, error) {
	const op = "config.LoadServerConfig"

	file, err := loadOrCreateServerConfigFile(dir)
	if err != nil {
		return nil, rerr.E(op, rerr.Config, err)
	}
	if ipOverride != "" {
		file.IP = ipOverride
	}
	if portOverride != 0 {
		file.Port = portOverride
	}

	ip := net.ParseIP(file.IP)
	if ip == nil {
		return nil, rerr.E(op, rerr.Config, rerr.Errorf("invalid ip in %s: %q", serverConfigFileName, file.IP))
	}
	return &ServerConfig{IP: ip, Port: file.Port}, nil
}

func loadOrCreateServerConfigFile(dir string) (*serverConfigFile, error) {
	path := dir + string(os.PathSeparator) + serverConfigFileName
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		def := &serverConfigFile{IP: defaultIP, Port: defaultPort}
		f, err := os.Create(path)
		if err != nil {
			return nil, rerr.Errorf("failed to create %s: %w", serverConfigFileName, err)
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(def); err != nil {
			return nil, rerr.Errorf("failed to write %s: %w", serverConfigFileName, err)
		}
		return def, nil
	}
	if err != nil {
		return nil, rerr.Errorf("failed to read %s: %w", serverConfigFileName, err)
	}

	file := &serverConfigFile{IP: defaultIP, Port: defaultPort}
	if err := toml.Unmarshal(data, file); err != nil {
		return nil, rerr.Errorf("failed to parse %s: %w", serverConfigFileName, err)
	}
	return file, nil
}
