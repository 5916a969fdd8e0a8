package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigWritesDefaultFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadServerConfig(dir, "", 0)
	require.NoError(t, err)
	require.Equal(t, defaultIP, cfg.IP.String())
	require.Equal(t, uint16(defaultPort), cfg.Port)

	// A second load must read back exactly what was written.
	cfg2, err := LoadServerConfig(dir, "", 0)
	require.NoError(t, err)
	require.Equal(t, cfg.IP.String(), cfg2.IP.String())
	require.Equal(t, cfg.Port, cfg2.Port)
}

func TestLoadServerConfigOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadServerConfig(dir, "", 0)
	require.NoError(t, err)

	cfg, err := LoadServerConfig(dir, "127.0.0.1", 9000)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.IP.String())
	require.Equal(t, uint16(9000), cfg.Port)
}

func TestLoadServerConfigRejectsInvalidIP(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadServerConfig(dir, "not-an-ip", 0)
	require.Error(t, err)
}
