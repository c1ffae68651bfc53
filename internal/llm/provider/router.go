package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathwise-dev/pathwise/pkg/observability"
)

// probePrompt is the trivial message Probe sends to verify a backend
// answers at all.
const probePrompt = "Reply with a single word to confirm you are reachable."

// Router maintains the shared "current provider" selection and performs
// provider-qualified dispatch. The selection is cross-session mutable
// state: reads, the lazy default initialization, and switches all go
// through one mutex so every caller observes a single agreed-upon value.
type Router struct {
	registry *Registry
	client   *Client
	log      zerolog.Logger

	mu      sync.RWMutex
	current string
}

// NewRouter creates a router over the given registry and client.
func NewRouter(registry *Registry, client *Client, log zerolog.Logger) *Router {
	return &Router{
		registry: registry,
		client:   client,
		log:      log.With().Str("component", "provider-router").Logger(),
	}
}

// Current returns the active provider code, lazily initializing it to the
// registry default on first use. Initialization is idempotent: concurrent
// first callers agree on one value rather than each overwriting the other.
func (r *Router) Current() string {
	r.mu.RLock()
	cur := r.current
	r.mu.RUnlock()
	if cur != "" {
		return cur
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == "" {
		r.current = r.registry.Default()
		r.log.Info().Str("provider", r.current).Msg("initialized current provider to registry default")
	}
	return r.current
}

// SwitchTo atomically replaces the current selection. It fails with
// ErrUnavailable, leaving the selection untouched, when the target is
// disabled, unknown, or missing credentials.
func (r *Router) SwitchTo(code string) error {
	if !r.registry.IsAvailable(code) {
		return fmt.Errorf("%w: %s", ErrUnavailable, code)
	}
	r.mu.Lock()
	prev := r.current
	r.current = code
	r.mu.Unlock()
	r.log.Info().Str("from", prev).Str("to", code).Msg("switched provider")
	return nil
}

// Available reports whether code currently passes the availability check.
func (r *Router) Available(code string) bool {
	return r.registry.IsAvailable(code)
}

// Send dispatches messages to the provider identified by code, or to the
// current provider when code is empty. Unavailable targets fail with
// ErrUnavailable; transport and payload faults come back wrapped from the
// client. No automatic retry: the degradation policy belongs to callers.
func (r *Router) Send(ctx context.Context, messages []Message, code string) (string, error) {
	if code == "" {
		code = r.Current()
	}
	cfg, ok := r.registry.Config(code)
	if !ok || !cfg.available() {
		observability.RecordProviderCall(code, "unavailable", 0)
		return "", fmt.Errorf("%w: %s", ErrUnavailable, code)
	}

	start := time.Now()
	text, err := r.client.Complete(ctx, cfg, messages)
	if err != nil {
		observability.RecordProviderCall(code, "error", time.Since(start))
		r.log.Warn().Err(err).Str("provider", code).Msg("provider call failed")
		return "", err
	}
	observability.RecordProviderCall(code, "ok", time.Since(start))
	return text, nil
}

// ListAvailable returns the codes currently passing the availability
// check, in declaration order.
func (r *Router) ListAvailable() []string {
	var codes []string
	for _, d := range descriptors {
		if r.registry.IsAvailable(d.Code) {
			codes = append(codes, d.Code)
		}
	}
	return codes
}

// Status returns the merged static and live view of one backend. The
// second return is false for codes outside the static enumeration.
func (r *Router) Status(code string) (Status, bool) {
	var desc Descriptor
	found := false
	for _, d := range descriptors {
		if d.Code == code {
			desc = d
			found = true
			break
		}
	}
	if !found {
		return Status{}, false
	}

	cfg, _ := r.registry.Config(code)
	return Status{
		Descriptor:  desc,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		HasAPIKey:   cfg.APIKey != "",
		Enabled:     cfg.Enabled,
		Available:   r.registry.IsAvailable(code),
		Current:     r.Current() == code,
	}, true
}

// Probe sends a trivial message to the backend and reports whether a
// non-empty response came back. All errors collapse to false.
func (r *Router) Probe(ctx context.Context, code string) bool {
	text, err := r.Send(ctx, []Message{{Role: "user", Content: probePrompt}}, code)
	if err != nil {
		return false
	}
	return text != ""
}
