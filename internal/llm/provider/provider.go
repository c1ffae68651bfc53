// Package provider implements the LLM backend abstraction: a registry of
// statically enumerated OpenAI-compatible backends, a shared chat-completion
// client, and a router that owns the cross-session "current provider"
// selection with availability-checked switching and fallback.
package provider

import (
	"errors"
	"strings"
	"time"
)

// Error kinds surfaced by this package. Callers match with errors.Is.
var (
	// ErrUnavailable means the target provider is disabled, unknown, or
	// missing credentials.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrCallFailed means the backend exchange failed at the transport
	// level (connection, timeout, non-2xx). The underlying cause is wrapped.
	ErrCallFailed = errors.New("provider call failed")

	// ErrInvalidResponse means the backend answered successfully but the
	// payload was unusable: no choices, or blank completion content.
	ErrInvalidResponse = errors.New("invalid provider response")
)

// Descriptor holds the static identity of a supported backend.
type Descriptor struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// descriptors enumerates the supported backends in declaration order.
// Every backend speaks the OpenAI chat-completions wire format; they differ
// only in base URL and bearer token.
var descriptors = []Descriptor{
	{Code: "openai", DisplayName: "OpenAI", Description: "OpenAI chat completion models"},
	{Code: "deepseek", DisplayName: "DeepSeek", Description: "DeepSeek chat models via OpenAI-compatible API"},
	{Code: "groq", DisplayName: "Groq", Description: "Groq-hosted open models via OpenAI-compatible API"},
	{Code: "mistral", DisplayName: "Mistral", Description: "Mistral La Plateforme via OpenAI-compatible API"},
}

// Descriptors returns the supported backends in declaration order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Config holds the externally supplied settings for one backend.
type Config struct {
	APIKey         string  `yaml:"api_key"`
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	Enabled        bool    `yaml:"enabled"`
}

// Timeout returns the per-call deadline, defaulting to 60s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// available reports whether this config passes the availability check:
// enabled and a non-blank API key. Recomputed on every query, never cached.
func (c Config) available() bool {
	return c.Enabled && strings.TrimSpace(c.APIKey) != ""
}

// Message is one chat turn sent to a backend.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Status merges a backend's static descriptor with its live configuration.
// Diagnostic output only; routing decisions never read it.
type Status struct {
	Descriptor
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	HasAPIKey   bool    `json:"has_api_key"`
	Enabled     bool    `json:"enabled"`
	Available   bool    `json:"available"`
	Current     bool    `json:"current"`
}
