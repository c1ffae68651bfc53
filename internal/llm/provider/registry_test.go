package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Config(t *testing.T) {
	reg := NewRegistry(map[string]Config{
		"openai": {APIKey: "sk-test", Enabled: true, Model: "gpt-4o"},
	}, "openai")

	cfg, ok := reg.Config("openai")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o", cfg.Model)

	_, ok = reg.Config("unknown")
	assert.False(t, ok)
}

func TestRegistry_IsAvailable(t *testing.T) {
	reg := NewRegistry(map[string]Config{
		"openai":   {APIKey: "sk-test", Enabled: true},
		"deepseek": {APIKey: "sk-test", Enabled: false},
		"groq":     {APIKey: "   ", Enabled: true},
	}, "openai")

	assert.True(t, reg.IsAvailable("openai"))
	assert.False(t, reg.IsAvailable("deepseek"), "disabled provider must be unavailable")
	assert.False(t, reg.IsAvailable("groq"), "blank API key must be unavailable")
	assert.False(t, reg.IsAvailable("unknown"))
}

func TestRegistry_AvailabilityRecomputed(t *testing.T) {
	reg := NewRegistry(map[string]Config{
		"openai": {APIKey: "sk-test", Enabled: true},
	}, "openai")
	assert.True(t, reg.IsAvailable("openai"))

	// Availability follows live config, it is never cached.
	reg.Register("openai", Config{APIKey: "sk-test", Enabled: false})
	assert.False(t, reg.IsAvailable("openai"))
}

func TestRegistry_Default(t *testing.T) {
	reg := NewRegistry(nil, "deepseek")
	assert.Equal(t, "deepseek", reg.Default())
}
