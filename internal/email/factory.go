package email

import (
	"fmt"

	"github.com/consolenews/newsletter-service/internal/config"
	apperrors "github.com/consolenews/newsletter-service/internal/errors"
)

var providerFactories = map[string]func(config.EmailConfig) Provider{
	"smtp": func(cfg config.EmailConfig) Provider {
		return NewSMTPProvider(cfg)
	},
	"resend": func(cfg config.EmailConfig) Provider {
		return NewResendProvider(cfg.ResendAPIKey, cfg.From)
	},
}

// NewProvider selects the concrete transport at startup from configuration.
func NewProvider(cfg config.EmailConfig) (Provider, error) {
	factory, ok := providerFactories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedProvider, cfg.Provider)
	}
	return factory(cfg), nil
}
