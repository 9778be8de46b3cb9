package auth

import (
	"context"
	"errors"

	"github.com/taskboard/taskboard/internal/server/models"
)

// Messages overrides the failure text the gate reports. Empty fields fall
// back to the defaults.
type Messages struct {
	Authentication string
	Authorization  string
}

const (
	defaultAuthenticationMsg = "Authentication required."
	defaultAuthorizationMsg  = "Unauthorized: You do not have permission to perform this action."
)

// Check is the authorization gate applied before every data operation.
// It fails when the context carries no identity, or when roles is non-empty
// and the identity's role is not among them. Authentication and
// authorization failures are distinguished only by message text.
func Check(ctx context.Context, roles []models.Role, msgs Messages) error {
	authMsg := msgs.Authentication
	if authMsg == "" {
		authMsg = defaultAuthenticationMsg
	}
	roleMsg := msgs.Authorization
	if roleMsg == "" {
		roleMsg = defaultAuthorizationMsg
	}

	ident, ok := IdentityFromContext(ctx)
	if !ok {
		return errors.New(authMsg)
	}

	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if ident.Role == r {
			return nil
		}
	}
	return errors.New(roleMsg)
}
