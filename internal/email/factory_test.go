package email

import (
	"testing"

	"github.com/consolenews/newsletter-service/internal/config"
	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	smtpProvider, err := NewProvider(config.EmailConfig{Provider: "smtp"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPProvider{}, smtpProvider)

	resendProvider, err := NewProvider(config.EmailConfig{Provider: "resend", ResendAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &ResendProvider{}, resendProvider)

	_, err = NewProvider(config.EmailConfig{Provider: "sendgrid"})
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedProvider)
}
