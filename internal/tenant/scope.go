// Package tenant defines the per-request tenant scope. The scope is built
// once by server middleware and passed explicitly into every domain
// operation; no service reads tenant identity from ambient state.
package tenant

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrMissingScope = errors.New("missing_tenant_scope")

// Scope identifies the organization an operation acts on, the language used
// to resolve single-translation fields, and the caller address used for
// abuse controls on the public surface.
type Scope struct {
	OrgID    snowflake.ID
	Language string
	ClientIP string
}

type scopeKey struct{}

// WithScope stores the scope for handler layers that only see a context
// (the GraphQL executor). Domain services never call FromContext; resolvers
// unpack the scope once and pass it down as an argument.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

func FromContext(ctx context.Context) (Scope, error) {
	if ctx == nil {
		return Scope{}, ErrMissingScope
	}
	scope, ok := ctx.Value(scopeKey{}).(Scope)
	if !ok || scope.OrgID == 0 {
		return Scope{}, ErrMissingScope
	}
	return scope, nil
}
