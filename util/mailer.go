package util

import (
	"fmt"

	"github.com/go-gomail/gomail"
)

// Mailer sends plain-text notifications.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPConfig configures SMTPMailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

// NoopMailer drops every message; used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) Send(to, subject, body string) error {
	Log.WithField("to", to).WithField("subject", subject).Debug("smtp not configured, email skipped")
	return nil
}

// NewMailer returns an SMTPMailer when a host is configured, NoopMailer otherwise.
func NewMailer(cfg SMTPConfig) Mailer {
	if cfg.Host == "" {
		return NoopMailer{}
	}
	return NewSMTPMailer(cfg)
}
