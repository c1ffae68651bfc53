package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathwise.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
default_provider: deepseek
providers:
  openai:
    api_key: sk-openai
    model: gpt-4o
    enabled: true
  deepseek:
    api_key: sk-deepseek
    base_url: https://api.deepseek.com/v1
    model: deepseek-chat
    temperature: 0.5
    max_tokens: 2048
    timeout_seconds: 30
    enabled: true
redis:
  addr: localhost:6379
session:
  ttl_minutes: 60
  idle_window_minutes: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "deepseek", cfg.DefaultProvider)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.Providers["deepseek"].BaseURL)
	assert.Equal(t, 0.5, cfg.Providers["deepseek"].Temperature)
	assert.Equal(t, time.Hour, cfg.Session.TTL())
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleWindow())
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
providers:
  openai:
    api_key: sk-test
    model: gpt-4o
    enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.DefaultProvider)
	assert.Equal(t, 0.7, cfg.Providers["openai"].Temperature)
	assert.Equal(t, 1024, cfg.Providers["openai"].MaxTokens)
	assert.Equal(t, 60, cfg.Providers["openai"].TimeoutSeconds)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleWindow())
	assert.Equal(t, "@every 5m", cfg.MonitorSchedule)
}

func TestLoad_APIKeyFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "sk-from-env")

	path := writeConfig(t, `
default_provider: groq
providers:
  groq:
    model: llama-3.3-70b
    enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Providers["groq"].APIKey)
}

func TestValidate_UnknownDefaultProvider(t *testing.T) {
	path := writeConfig(t, `
default_provider: mistral
providers:
  openai:
    api_key: sk-test
    enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
