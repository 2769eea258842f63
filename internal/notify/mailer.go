package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends a plain-text email to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail over SMTP with optional PLAIN auth.
type SMTPMailer struct {
	host string
	port int
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates a mailer. user and pass may be empty for servers
// that accept unauthenticated relay (local dev).
func NewSMTPMailer(host string, port int, from, user, pass string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPMailer{host: host, port: port, from: from, auth: auth}
}

// Send delivers one message. Callers treat failures as non-fatal.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// NopMailer discards all mail. Used when SMTP is not configured.
type NopMailer struct{}

func (NopMailer) Send(context.Context, string, string, string) error { return nil }
