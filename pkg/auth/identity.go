// Package auth resolves and authorizes the caller of each request.
//
// Credentials are HTTP Basic (email:password) and are re-verified on every
// request; nothing is cached or persisted between requests. The resolved
// Identity travels in the request context only as far as the handler, which
// passes it explicitly to services and to Authorize.
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/apperr"
)

// Identity is the verified caller of a single request.
type Identity struct {
	AccountID uuid.UUID
	Email     string
}

var (
	// ErrMissingCredential means no usable Basic credential was presented.
	ErrMissingCredential = fmt.Errorf("%w: missing credential", apperr.ErrUnauthenticated)

	// ErrInvalidCredential means the email is unknown or the password does not match.
	// Both cases share one error so responses do not reveal which accounts exist.
	ErrInvalidCredential = fmt.Errorf("%w: invalid credential", apperr.ErrUnauthenticated)
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromCtx returns the identity stored by RequireAuth.
// Returns ErrMissingCredential when the request was not authenticated.
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.AccountID == uuid.Nil {
		return Identity{}, ErrMissingCredential
	}
	return id, nil
}
