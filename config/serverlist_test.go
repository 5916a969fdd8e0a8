package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerListAddAndGet(t *testing.T) {
	dir := t.TempDir()
	list, err := LoadServerList(dir)
	require.NoError(t, err)

	entry := ServerEntry{
		Identifier:          "home",
		URL:                 "https://example.com:3600",
		CertificateHostname: "example.com",
		Certificate:         "----BEGIN CERT----",
		Token:               "abcd1234",
	}
	require.NoError(t, list.Add(entry))

	got, ok := list.Get("home")
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func TestServerListAddOverwritesDuplicateIdentifier(t *testing.T) {
	dir := t.TempDir()
	list, err := LoadServerList(dir)
	require.NoError(t, err)

	require.NoError(t, list.Add(ServerEntry{Identifier: "home", URL: "https://old:3600"}))
	require.NoError(t, list.Add(ServerEntry{Identifier: "home", URL: "https://new:3600"}))

	got, ok := list.Get("home")
	require.True(t, ok)
	require.Equal(t, "https://new:3600", got.URL)
	require.Len(t, list.All(), 1)
}

func TestServerListPersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	list, err := LoadServerList(dir)
	require.NoError(t, err)
	require.NoError(t, list.Add(ServerEntry{Identifier: "home", URL: "https://example.com:3600"}))

	reloaded, err := LoadServerList(dir)
	require.NoError(t, err)
	got, ok := reloaded.Get("home")
	require.True(t, ok)
	require.Equal(t, "https://example.com:3600", got.URL)
}
