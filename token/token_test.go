package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateHashRoundTrip(t *testing.T) {
	tok, err := Generate()
	require.NoError(t, err)
	require.Len(t, tok, sizeBytes*2)

	h1, err := Hash(tok)
	require.NoError(t, err)
	require.Len(t, h1, 64*2) // SHA-512 is 64 bytes, hex doubles it.

	h2, err := Hash(tok)
	require.NoError(t, err)
	require.Equal(t, h1, h2, "Hash must be pure")
}

func TestGenerateIsRandom(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHashRejectsNonHex(t *testing.T) {
	_, err := Hash("not-hex-at-all")
	require.Error(t, err)
}

func TestHashIsLowercase(t *testing.T) {
	h, err := Hash("ab")
	require.NoError(t, err)
	for _, r := range h {
		require.False(t, r >= 'A' && r <= 'F', "hash must be lowercase hex")
	}
}
