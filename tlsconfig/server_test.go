package tlsconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateServerIdentityGeneratesAndReloads(t *testing.T) {
	dir := t.TempDir()

	id, err := LoadOrGenerateServerIdentity(dir)
	require.NoError(t, err)
	require.NotEmpty(t, id.PEM)
	require.NotEmpty(t, id.Certificate.Certificate)

	// Reloading must return the same identity, not regenerate.
	id2, err := LoadOrGenerateServerIdentity(dir)
	require.NoError(t, err)
	require.Equal(t, id.PEM, id2.PEM)
}

func TestClientConfigRequiresValidPEM(t *testing.T) {
	_, err := ClientConfig([]byte("not a certificate"), "localhost")
	require.Error(t, err)
}

func TestClientConfigPinsHostname(t *testing.T) {
	dir := t.TempDir()
	id, err := LoadOrGenerateServerIdentity(dir)
	require.NoError(t, err)

	cfg, err := ClientConfig(id.PEM, "localhost")
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.ServerName)
	require.NotNil(t, cfg.RootCAs)
}
