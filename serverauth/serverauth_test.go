package serverauth

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"rrp.dev/config"
	"rrp.dev/token"
)

func newAllowlistWithClient(t *testing.T, identifier, rawToken string) *config.Allowlist {
	t.Helper()
	dir := t.TempDir()
	hash, err := token.Hash(rawToken)
	require.NoError(t, err)

	contents := "[" + identifier + "]\nhashed_token = \"" + hash + "\"\n"
	require.NoError(t, os.WriteFile(dir+"/clients.toml", []byte(contents), 0o600))

	list, err := config.LoadAllowlist(dir)
	require.NoError(t, err)
	return list
}

func TestAuthenticateRejectsMissingMetadata(t *testing.T) {
	allowlist := newAllowlistWithClient(t, "alice", "ab")
	_, err := authenticate(context.Background(), allowlist)
	require.Error(t, err)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.Equal(t, "No valid auth token was provided", status.Convert(err).Message())
}

func TestAuthenticateRejectsUnknownToken(t *testing.T) {
	allowlist := newAllowlistWithClient(t, "alice", "ab")
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(token.MetadataKey, "ff"))
	_, err := authenticate(ctx, allowlist)
	require.Error(t, err)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.Equal(t, "No valid auth token was provided", status.Convert(err).Message())
}

func TestAuthenticateAcceptsKnownToken(t *testing.T) {
	allowlist := newAllowlistWithClient(t, "alice", "ab")
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(token.MetadataKey, "ab"))
	client, err := authenticate(ctx, allowlist)
	require.NoError(t, err)
	require.Equal(t, "alice", client.Identifier)
}
