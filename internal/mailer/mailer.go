package mailer

import (
	"strings"

	"go-itops-portal/pkg/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers one outbound email. Exactly one attempt per call: no
// retries, no queue.
type Sender interface {
	Send(subject, htmlBody string) error
}

// NewSender returns the configured SMTP sender, or a disabled one when no
// SMTP host is set.
func NewSender(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return nopSender{}
	}
	return NewSMTPSender(cfg)
}

type nopSender struct{}

func (nopSender) Send(subject, htmlBody string) error { return nil }

// SMTPSender sends through a plain SMTP relay.
type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", splitAddresses(s.cfg.To)...)
	if cc := splitAddresses(s.cfg.CC); len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

func splitAddresses(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
