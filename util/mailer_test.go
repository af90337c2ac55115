package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMailer(t *testing.T) {
	m := NewMailer(SMTPConfig{})
	assert.IsType(t, NoopMailer{}, m)
	assert.NoError(t, m.Send("jane@x.com", "subject", "body"))

	smtp := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "noreply@example.com"})
	sm, ok := smtp.(*SMTPMailer)
	assert.True(t, ok)
	assert.Equal(t, "noreply@example.com", sm.cfg.From)
}
