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

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://api.assemblyai.com/v2", cfg.AssemblyAIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, 120*time.Second, cfg.PollTimeout)
	assert.Equal(t, "data/fallback-db.json", cfg.FallbackDBPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ASSEMBLYAI_API_KEY", "key-123")
	t.Setenv("DATABASE_URL", "postgres://localhost/voicescribe")
	t.Setenv("POLL_INTERVAL", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "key-123", cfg.AssemblyAIAPIKey)
	assert.Equal(t, "postgres://localhost/voicescribe", cfg.DatabaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
}

func TestProviderKeyPresent(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.ProviderKeyPresent())

	cfg.AssemblyAIAPIKey = "key"
	assert.True(t, cfg.ProviderKeyPresent())
}

func TestAddr(t *testing.T) {
	cfg := &Config{Host: "127.0.0.1", Port: "8081"}
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("POLL_TIMEOUT", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "qa")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonNumericPort(t *testing.T) {
	t.Setenv("PORT", "eighty-eighty")

	_, err := Load()
	assert.Error(t, err)
}
