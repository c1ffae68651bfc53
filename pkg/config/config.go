// Package config loads the application configuration from YAML with
// environment-variable fallback for provider credentials.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pathwise-dev/pathwise/internal/llm/provider"
	"github.com/pathwise-dev/pathwise/pkg/session"
)

// Config is the application configuration.
type Config struct {
	// DefaultProvider is the provider code the router falls back to.
	DefaultProvider string `yaml:"default_provider"`

	// Providers maps provider codes to their backend configuration.
	Providers map[string]provider.Config `yaml:"providers"`

	// Redis configures the session store; an empty Addr selects the
	// in-memory store.
	Redis session.RedisConfig `yaml:"redis"`

	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`

	// MonitorSchedule is the cron spec for the provider availability
	// sweep (default "@every 5m").
	MonitorSchedule string `yaml:"monitor_schedule"`
}

// SessionConfig controls session lifetime policy.
type SessionConfig struct {
	// TTLMinutes is the store-side expiry applied on every write (default 1440).
	TTLMinutes int `yaml:"ttl_minutes"`
	// IdleWindowMinutes is the read-time expiry horizon (default 120).
	IdleWindowMinutes int `yaml:"idle_window_minutes"`
}

// TTL returns the store TTL as a duration.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// IdleWindow returns the idle expiry horizon as a duration.
func (s SessionConfig) IdleWindow() time.Duration {
	if s.IdleWindowMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(s.IdleWindowMinutes) * time.Minute
}

// RateLimitConfig controls per-user turn throttling.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// MetricsConfig controls the observability server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads and parses the configuration file, applies defaults, and
// fills missing API keys from <CODE>_API_KEY environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DefaultProvider == "" {
		c.DefaultProvider = "openai"
	}
	if c.Providers == nil {
		c.Providers = make(map[string]provider.Config)
	}
	if c.MonitorSchedule == "" {
		c.MonitorSchedule = "@every 5m"
	}
	if c.Metrics.Port == 0 {
		c.Metrics.Port = 9090
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 1
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}

	for code, pc := range c.Providers {
		if pc.APIKey == "" {
			pc.APIKey = os.Getenv(strings.ToUpper(code) + "_API_KEY")
		}
		if pc.Temperature == 0 {
			pc.Temperature = 0.7
		}
		if pc.MaxTokens == 0 {
			pc.MaxTokens = 1024
		}
		if pc.TimeoutSeconds == 0 {
			pc.TimeoutSeconds = 60
		}
		c.Providers[code] = pc
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, ok := c.Providers[c.DefaultProvider]; !ok {
		return fmt.Errorf("default_provider %q is not declared under providers", c.DefaultProvider)
	}
	return nil
}
