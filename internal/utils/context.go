package utils

import (
	"context"
)

// contextKey is an unexported type for context keys defined in this package,
// preventing collisions with keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// ClientCtxKey stores the authenticated client name in a request context.
var ClientCtxKey = contextKey("client")

// WithClient returns a copy of ctx carrying client.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, ClientCtxKey, client)
}

// GetClientFromContext returns the client name stored by the auth
// middleware. ok is false when the request was not authenticated.
func GetClientFromContext(ctx context.Context) (string, bool) {
	client, ok := ctx.Value(ClientCtxKey).(string)
	return client, ok && client != ""
}
