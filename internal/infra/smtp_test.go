package infra

import (
	"testing"

	"tavola/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestMailer_DisabledWithoutHost(t *testing.T) {
	m := NewMailer(&config.Config{SMTPPort: 587})
	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send("a@b.c", "hi", "body", ""), ErrMailerDisabled)

	var nilMailer *Mailer
	assert.False(t, nilMailer.Enabled())
}

func TestMailer_Enabled(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 2525})
	assert.True(t, m.Enabled())
	assert.Equal(t, "smtp.example.com:2525", m.addr)
}
