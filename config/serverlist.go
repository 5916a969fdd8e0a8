package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"rrp.dev/internal/rerr"
)

const serversFileName = "servers.toml"

// ServerEntry is one server the client knows how to reach, as stored in
// servers.toml. Grounded on original_source/client/src/server.rs's Server.
type ServerEntry struct {
	Identifier          string
	URL                 string
	CertificateHostname string
	Certificate         string
	Token               string
}

type serverEntryFile struct {
	URL                 string `toml:"url"`
	CertificateHostname string `toml:"certificate_hostname"`
	Certificate         string `toml:"certificate"`
	Token               string `toml:"token"`
}

// ServerList is the client's mutable store of known servers, keyed by
// identifier. Unlike Allowlist, this is read and written repeatedly over the
// life of the process (every "rrp add" mutates it), so access is guarded by
// a mutex and every mutation is flushed to disk in full.
type ServerList struct {
	mu      sync.Mutex
	dir     string
	entries map[string]ServerEntry
}

// LoadServerList reads servers.toml from dir. A missing file is not an
// error: it means no servers have been added yet.
func LoadServerList(dir string) (*ServerList, error) {
	const op = "config.LoadServerList"
	path := filepath.Join(dir, serversFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ServerList{dir: dir, entries: map[string]ServerEntry{}}, nil
	}
	if err != nil {
		return nil, rerr.E(op, rerr.Config, err)
	}

	var raw map[string]serverEntryFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, rerr.E(op, rerr.Config, rerr.Errorf("failed to parse %s: %w", serversFileName, err))
	}

	entries := make(map[string]ServerEntry, len(raw))
	for identifier, s := range raw {
		entries[identifier] = ServerEntry{
			Identifier:          identifier,
			URL:                 s.URL,
			CertificateHostname: s.CertificateHostname,
			Certificate:         s.Certificate,
			Token:               s.Token,
		}
	}
	return &ServerList{dir: dir, entries: entries}, nil
}

// Get returns the entry for identifier, if known.
func (l *ServerList) Get(identifier string) (ServerEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[identifier]
	return e, ok
}

// All returns a snapshot of every known server, for "rrp list".
func (l *ServerList) All() []ServerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ServerEntry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	return out
}

// Add inserts or overwrites the entry for entry.Identifier and rewrites
// servers.toml in full. A duplicate identifier silently overwrites the
// previous entry, matching original_source/client/src/server.rs's
// ServerList::add_server.
func (l *ServerList) Add(entry ServerEntry) error {
	const op = "config.ServerList.Add"
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[entry.Identifier] = entry
	if err := l.flushLocked(); err != nil {
		return rerr.E(op, rerr.Io, err)
	}
	return nil
}

func (l *ServerList) flushLocked() error {
	raw := make(map[string]serverEntryFile, len(l.entries))
	for identifier, e := range l.entries {
		raw[identifier] = serverEntryFile{
			URL:                 e.URL,
			CertificateHostname: e.CertificateHostname,
			Certificate:         e.Certificate,
			Token:               e.Token,
		}
	}

	if err := os.MkdirAll(l.dir, 0o700); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(l.dir, serversFileName))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(raw)
}
