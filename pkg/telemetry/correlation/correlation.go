package correlation

import (
	"context"
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

type requestIDKey struct{}

// NewRequestID mints a sortable unique id for an inbound request.
func NewRequestID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id, or "" when unset.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
