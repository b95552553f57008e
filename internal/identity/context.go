// internal/identity/context.go
package identity

import (
	"context"
)

// ContextKey is a type-safe key for context values
type ContextKey string

// ClientContextKey is the key used to store the per-request platform client
// in the request context
const ClientContextKey ContextKey = "identity:client"

// ContextWithClient attaches a per-request platform client to a context
func ContextWithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, ClientContextKey, c)
}

// ClientFromContext extracts the per-request platform client from a context.
// Returns nil when no client was attached.
func ClientFromContext(ctx context.Context) Client {
	if c, ok := ctx.Value(ClientContextKey).(Client); ok {
		return c
	}
	return nil
}
