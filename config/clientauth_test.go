package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAllowlistMissingFileWritesTemplate(t *testing.T) {
	dir := t.TempDir()

	list, err := LoadAllowlist(dir)
	require.NoError(t, err)
	_, ok := list.ByHash("anything")
	require.False(t, ok)

	_, err = os.Stat(filepath.Join(dir, clientsTemplateFileName))
	require.NoError(t, err, "a template file should be written when clients.toml is absent")
}

func TestLoadAllowlistIndexesByHash(t *testing.T) {
	dir := t.TempDir()
	contents := `
[alice]
hashed_token = "deadbeef"

[bob]
hashed_token = "cafef00d"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, clientsFileName), []byte(contents), 0o600))

	list, err := LoadAllowlist(dir)
	require.NoError(t, err)

	entry, ok := list.ByHash("deadbeef")
	require.True(t, ok)
	require.Equal(t, "alice", entry.Identifier)

	_, ok = list.ByHash("not-present")
	require.False(t, ok)
}

func TestLoadAllowlistRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, clientsFileName), []byte("not valid toml {{{"), 0o600))

	_, err := LoadAllowlist(dir)
	require.Error(t, err)
}
