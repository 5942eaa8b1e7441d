package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("POSTGRES_URL", "postgres://localhost/roboclic")
	t.Setenv("ADMIN_TOKEN", "s3cret")
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "postgres://localhost/roboclic", cfg.PostgresURL)
	assert.Equal(t, "s3cret", cfg.AdminToken)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("POSTGRES_URL", "postgres://localhost/roboclic")
	t.Setenv("ADMIN_TOKEN", "s3cret")

	_, err := Load()
	assert.Error(t, err)
}
