package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"rrp.dev/internal/rerr"
	"rrp.dev/internal/rlog"
)

const (
	clientsFileName         = "clients.toml"
	clientsTemplateFileName = "clients.toml.example"
)

// ClientEntry is one accepted client, as stored in clients.toml: an
// operator-chosen identifier and the SHA-512 hash of the client's token.
// Grounded on original_source/server/src/auth.rs's Client.
type ClientEntry struct {
	Identifier  string
	HashedToken string
}

type clientFile struct {
	HashedToken string `toml:"hashed_token"`
}

// Allowlist is the server's immutable, in-memory index of accepted clients,
// keyed by hashed token for O(1) lookup. It is built once at startup and
// never mutated afterward (spec.md §4.2: "Lookup is O(1) and lock-free for
// reads... The allow-list is loaded once at process start").
type Allowlist struct {
	byHash map[string]ClientEntry
}

// LoadAllowlist reads clients.toml from dir. If the file is missing, it logs
// a warning (every request will be rejected), writes a template example
// file alongside it, and returns an empty Allowlist — exactly
// original_source/server/src/auth.rs's Auth::load_from_file.
func LoadAllowlist(dir string) (*Allowlist, error) {
	const op = "config.LoadAllowlist"
	path := filepath.Join(dir, clientsFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		writeClientsTemplate(dir)
		rlog.Error.Printf("%s: the clients file is missing, server will reject all requests", op)
		return &Allowlist{byHash: map[string]ClientEntry{}}, nil
	}
	if err != nil {
		return nil, rerr.E(op, rerr.Config, err)
	}

	var raw map[string]clientFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, rerr.E(op, rerr.Config, rerr.Errorf("failed to parse %s: %w", clientsFileName, err))
	}

	byHash := make(map[string]ClientEntry, len(raw))
	for identifier, c := range raw {
		byHash[c.HashedToken] = ClientEntry{Identifier: identifier, HashedToken: c.HashedToken}
	}
	if len(byHash) == 0 {
		rlog.Error.Printf("%s: the clients file is empty, server will reject all requests", op)
	}
	return &Allowlist{byHash: byHash}, nil
}

func writeClientsTemplate(dir string) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return
	}
	f, err := os.Create(filepath.Join(dir, clientsTemplateFileName))
	if err != nil {
		return
	}
	defer f.Close()
	mock := map[string]clientFile{
		"A_unique_client_identifier": {HashedToken: "<An hex encoded hashed version of the client's token>"},
	}
	_ = toml.NewEncoder(f).Encode(mock)
}

// ByHash looks up the ClientEntry for a hashed token. The bool reports
// whether the hash is present in the allow-list.
func (a *Allowlist) ByHash(hash string) (ClientEntry, bool) {
	c, ok := a.byHash[hash]
	return c, ok
}

// Count returns how many clients are in the allow-list.
func (a *Allowlist) Count() int {
	return len(a.byHash)
}
