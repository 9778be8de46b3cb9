package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/taskboard/taskboard/internal/logging"
)

// SMTPMailer sends mail through a plain SMTP relay via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger logging.Logger
}

func NewSMTPMailer(host string, port int, username, password, from string, l logging.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: l.With("module", "mailer"),
	}
}

// SendResetToken mails the reset token to the given address with plain-text
// and HTML bodies.
func (m *SMTPMailer) SendResetToken(ctx context.Context, to string, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/plain", fmt.Sprintf("You requested a password reset. Use the following token: %s", token))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>You requested a password reset.</p><p>Use the following token:</p><h3>%s</h3>", token))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error(ctx, "failed to send reset email", "to", to, "error", err.Error())
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	m.logger.Info(ctx, "password reset token sent", "to", to)
	return nil
}
