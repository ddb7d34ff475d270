package email

import (
	"fmt"

	"gathero_backend/internal/config"
	"gathero_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Delivery is best-effort: callers
// fire it in a goroutine and never fail a request on mail errors.
type Sender interface {
	SendVerificationEmail(to, name, token string) error
}

// NewSender returns a gomail-backed sender, or a no-op one when mail is
// disabled in config (local development, tests).
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.Enabled {
		return &noopSender{}
	}
	return &smtpSender{cfg: cfg}
}

type smtpSender struct {
	cfg config.EmailConfig
}

func (s *smtpSender) SendVerificationEmail(to, name, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email address")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Confirm your email address to activate your account:</p>
<p><a href="%s/verify-email?token=%s">Verify email</a></p>
<p>If you did not sign up, you can ignore this message.</p>`,
		name, s.cfg.BaseURL, token,
	))

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	return d.DialAndSend(m)
}

type noopSender struct{}

func (s *noopSender) SendVerificationEmail(to, name, token string) error {
	logger.Debug("email disabled, skipping verification mail", "to", to)
	return nil
}
