package gateway

import (
	"context"

	"github.com/google/uuid"
)

type requestIDContextKey struct{}

// WithRequestID attaches a request id to ctx. Gateway log lines for calls
// made with ctx carry it as request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// RequestIDFromContext returns the request id attached to ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok && id != ""
}

// ensureRequestID returns ctx carrying a request id, generating one when
// missing.
func ensureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestIDFromContext(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}
