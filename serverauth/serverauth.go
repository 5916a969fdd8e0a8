// Package serverauth wraps the reverse proxy's two streaming RPCs with a
// token-based access check. Both BindTcp and AcceptTcpConnection are
// streaming methods, so unlike upspin's auth/grpcauth (which authenticates
// per-unary-call via a session cache) a single grpc.StreamServerInterceptor
// is enough here: one token per stream, checked once at stream setup.
// Grounded on auth/grpcauth/server.go's SessionFromContext and
// original_source/server/src/auth.rs's attach_auth middleware.
package serverauth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"rrp.dev/config"
	"rrp.dev/token"
)

// unauthenticatedMessage is the exact client-visible message for any
// rejected stream, matching the original's
// Status::unauthenticated("No valid auth token was provided") verbatim.
const unauthenticatedMessage = "No valid auth token was provided"

type clientKey struct{}

// ClientFromContext returns the ClientEntry the auth interceptor attached to
// ctx. It panics if called outside of an intercepted stream handler, since
// that would be a programming error, not a runtime one.
func ClientFromContext(ctx context.Context) config.ClientEntry {
	c, ok := ctx.Value(clientKey{}).(config.ClientEntry)
	if !ok {
		panic("serverauth: ClientFromContext called outside an authenticated stream")
	}
	return c
}

// StreamInterceptor builds a grpc.StreamServerInterceptor that rejects any
// stream whose "authorization" metadata doesn't hash to an entry in
// allowlist, and otherwise attaches the matched config.ClientEntry to the
// stream's context.
func StreamInterceptor(allowlist *config.Allowlist) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		client, err := authenticate(ss.Context(), allowlist)
		if err != nil {
			return err
		}
		return handler(srv, &authenticatedStream{ServerStream: ss, client: client})
	}
}

func authenticate(ctx context.Context, allowlist *config.Allowlist) (config.ClientEntry, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return config.ClientEntry{}, status.Error(codes.Unauthenticated, unauthenticatedMessage)
	}
	values := md.Get(token.MetadataKey)
	if len(values) != 1 {
		return config.ClientEntry{}, status.Error(codes.Unauthenticated, unauthenticatedMessage)
	}

	hash, err := token.Hash(values[0])
	if err != nil {
		return config.ClientEntry{}, status.Error(codes.Unauthenticated, unauthenticatedMessage)
	}

	client, ok := allowlist.ByHash(hash)
	if !ok {
		return config.ClientEntry{}, status.Error(codes.Unauthenticated, unauthenticatedMessage)
	}
	return client, nil
}

// authenticatedStream overrides Context so downstream handlers can recover
// the authenticated client via ClientFromContext.
type authenticatedStream struct {
	grpc.ServerStream
	client config.ClientEntry
}

func (s *authenticatedStream) Context() context.Context {
	return context.WithValue(s.ServerStream.Context(), clientKey{}, s.client)
}
