package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresQuoteAPIKey(t *testing.T) {
	t.Setenv("QUOTE_API_KEY", "")

	_, err := New()
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("QUOTE_API_KEY", "test-token")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.QuoteAPIKey)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Contains(t, cfg.DSN(), "dbname=finance")
}

func TestNewSessionTTLOverride(t *testing.T) {
	t.Setenv("QUOTE_API_KEY", "test-token")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)

	t.Setenv("SESSION_TTL", "soon")
	_, err = New()
	assert.Error(t, err)
}
