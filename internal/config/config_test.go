package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "en", cfg.Language)
	assert.False(t, cfg.Debug)
	assert.NotEmpty(t, cfg.StateFile)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TENNIS_API_URL", "https://tennis.example.com")
	t.Setenv("TENNIS_HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("TENNIS_STATE_FILE", "/tmp/tennis/state.json")
	t.Setenv("TENNIS_LANGUAGE", "pl")
	t.Setenv("TENNIS_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://tennis.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/tennis/state.json", cfg.StateFile)
	assert.Equal(t, "pl", cfg.Language)
	assert.True(t, cfg.Debug)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TENNIS_HTTP_TIMEOUT_SECONDS", "soon")
	t.Setenv("TENNIS_DEBUG", "definitely")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.Debug)
}
