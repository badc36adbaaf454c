package email

import (
	"net/smtp"
	"strings"
	"testing"

	"github.com/consolenews/newsletter-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPProviderSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	p := NewSMTPProvider(config.EmailConfig{
		SMTPHost: "mail.example.com",
		SMTPPort: 587,
		From:     "Console.News <newsletter@console.news>",
	})
	p.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	resp, err := p.Send(Message{
		To:      "reader@example.com",
		Subject: "Weekly digest",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.Equal(t, "newsletter@console.news", gotFrom)
	assert.Equal(t, []string{"reader@example.com"}, gotTo)
	assert.Equal(t, []string{"reader@example.com"}, resp.Accepted)
	assert.NotEmpty(t, resp.MessageID)

	raw := string(gotMsg)
	assert.Contains(t, raw, "From: Console.News <newsletter@console.news>\r\n")
	assert.Contains(t, raw, "Subject: Weekly digest\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(raw, "<p>hello</p>\r\n"))
}

func TestBuildMessagePlainTextFallback(t *testing.T) {
	raw := string(buildMessage("a@b.c", Message{To: "x@y.z", Subject: "s", Text: "plain body"}, "<id@host>"))
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.Contains(t, raw, "plain body")
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "a@b.c", envelopeAddress("Name <a@b.c>"))
	assert.Equal(t, "a@b.c", envelopeAddress("a@b.c"))
}
