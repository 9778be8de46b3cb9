// Package email delivers password-reset tokens over SMTP.
package email

import "context"

// Mailer is the outbound-mail collaborator. The server only ever sends one
// kind of message: the password-reset token.
type Mailer interface {
	SendResetToken(ctx context.Context, to string, token string) error
}
