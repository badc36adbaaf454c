package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/newsletter?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, 587, cfg.Email.SMTPPort)

	assert.False(t, cfg.Cron.Enabled)
	assert.Equal(t, "America/Sao_Paulo", cfg.Cron.Timezone)
	assert.Equal(t, "0 8 * * 1", cfg.Cron.WeeklySchedule)
	assert.Equal(t, 100, cfg.Cron.MaxEmailsPerBatch)
	assert.Equal(t, time.Second, cfg.Cron.DelayBetweenBatches)

	assert.Equal(t, "newsletter_events", cfg.AMQP.Queue)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/x")
	t.Setenv("NEWSLETTER_CRON_ENABLED", "true")
	t.Setenv("NEWSLETTER_CRON_TIMEZONE", "UTC")
	t.Setenv("MAX_EMAILS_PER_BATCH", "25")
	t.Setenv("DELAY_BETWEEN_BATCHES", "250")
	t.Setenv("EMAIL_PROVIDER", "Resend")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cron.Enabled)
	assert.Equal(t, "UTC", cfg.Cron.Timezone)
	assert.Equal(t, 25, cfg.Cron.MaxEmailsPerBatch)
	assert.Equal(t, 250*time.Millisecond, cfg.Cron.DelayBetweenBatches)
	assert.Equal(t, "resend", cfg.Email.Provider)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestGetenvIntInvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 42, getenvInt("SOME_INT", 42))
}
