package auth

import (
	"context"

	"github.com/taskboard/taskboard/internal/server/models"
)

// Identity is the decoded credential payload attached to a request. It is
// threaded through every operation via the context.
type Identity struct {
	ID    string
	Email string
	Role  models.Role
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext returns the identity attached to ctx, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*Identity)
	return ident, ok && ident != nil
}
