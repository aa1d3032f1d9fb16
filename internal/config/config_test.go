package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAMLAndDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  port: "8080"
db:
  dsn: postgres://u:p@localhost:5432/devconnector
github:
  client_id: abc
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres://u:p@localhost:5432/devconnector", cfg.DB.DSN)
	assert.Equal(t, "abc", cfg.Github.ClientID)
	assert.Equal(t, "https://api.github.com", cfg.Github.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Github.Timeout)
	assert.Equal(t, time.Hour, cfg.Github.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "devconnector-profile-api", cfg.Auth.Issuer)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_PORT", "9999")
	t.Setenv("GITHUB_SECRET", "shh")
	t.Setenv("GITHUB_CACHE_TTL", "15m")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("JWT_ISSUER", "staging-issuer")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, "shh", cfg.Github.ClientSecret)
	assert.Equal(t, 15*time.Minute, cfg.Github.CacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "staging-issuer", cfg.Auth.Issuer)
	assert.Equal(t, "debug", cfg.Log.Level)
}
