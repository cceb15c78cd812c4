package tenant

import (
	"context"
	"errors"
)

// ID identifies a single family. It doubles as the bearer credential:
// anyone holding the token has full access to that family's data. Every
// store operation takes an ID explicitly; nothing is inferred from
// ambient state, so a query that forgets its tenant does not compile.
type ID string

// ErrMissing is returned when a request carries no family ID.
var ErrMissing = errors.New("no family ID on request")

type contextKey struct{}

// WithID attaches a family ID to the request context.
func WithID(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the family ID placed on the context by the
// access gate middleware.
func FromContext(ctx context.Context) (ID, error) {
	id, ok := ctx.Value(contextKey{}).(ID)
	if !ok || id == "" {
		return "", ErrMissing
	}
	return id, nil
}
