package jwtauth

import "context"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey string

const (
	principalContextKey contextKey = "github.com/Wang-tianhao/vibrant-userguard/jwtauth:principal"
	requestIDContextKey contextKey = "github.com/Wang-tianhao/vibrant-userguard/jwtauth:request_id"
)

// WithPrincipal stores the authenticated principal in the request context.
// The principal should not be modified by downstream handlers.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// GetPrincipal retrieves the authenticated principal from the request context.
// Returns nil, false if no principal is present.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok && p != nil
}

// MustGetPrincipal retrieves the principal from context and panics if not present.
// Use only behind RequireRole or the gRPC interceptor.
func MustGetPrincipal(ctx context.Context) *Principal {
	p, ok := GetPrincipal(ctx)
	if !ok {
		panic("jwtauth: principal not found in context")
	}
	return p
}

// WithRequestID stores a request ID in context for correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
