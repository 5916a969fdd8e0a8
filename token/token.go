// Package token implements the client authentication token scheme shared by
// the server and client: a 512-bit random value, hex-encoded on the wire and
// on disk, authenticated by its SHA-512 hash. Grounded on
// original_source/core/src/auth.rs.
package token

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"

	"rrp.dev/internal/rerr"
)

// sizeBytes is the raw size of a generated token: 512 bits.
const sizeBytes = 512 / 8

// MetadataKey is the gRPC metadata header name carrying the bearer token.
const MetadataKey = "authorization"

// Generate returns a new cryptographically random token, hex-encoded.
func Generate() (string, error) {
	buf := make([]byte, sizeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", rerr.E("token.Generate", rerr.Internal, err)
	}
	return hex.EncodeToString(buf), nil
}

// Hash decodes hexToken and returns the hex-encoded SHA-512 of its raw
// bytes. This is the equivalence relation the auth interceptor uses: two
// tokens authenticate the same client if and only if Hash agrees on both,
// and it must produce byte-identical output on the client (rrp add) and the
// server (the allow-list lookup).
func Hash(hexToken string) (string, error) {
	raw, err := hex.DecodeString(hexToken)
	if err != nil {
		return "", rerr.E("token.Hash", rerr.InvalidArgument, rerr.Errorf("failed to parse the token"))
	}
	sum := sha512.Sum512(raw)
	return hex.EncodeToString(sum[:]), nil
}
