package provider

import "sync"

// Registry resolves provider codes to their externally supplied
// configuration and reports live availability. Reads dominate; a RWMutex
// guards the config map so configuration can be replaced at runtime.
type Registry struct {
	mu          sync.RWMutex
	configs     map[string]Config
	defaultCode string
}

// NewRegistry creates a registry over the supplied configurations.
// defaultCode is assumed statically valid; if its config is later disabled,
// callers still route to it and the availability failure surfaces at call
// time, not here.
func NewRegistry(configs map[string]Config, defaultCode string) *Registry {
	cp := make(map[string]Config, len(configs))
	for code, cfg := range configs {
		cp[code] = cfg
	}
	return &Registry{configs: cp, defaultCode: defaultCode}
}

// Register adds or replaces the configuration for a provider code.
func (r *Registry) Register(code string, cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[code] = cfg
}

// Config returns the configuration for code, reporting whether it exists.
func (r *Registry) Config(code string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[code]
	return cfg, ok
}

// IsAvailable reports whether code has a config that is enabled with a
// non-blank API key. Recomputed on every call.
func (r *Registry) IsAvailable(code string) bool {
	cfg, ok := r.Config(code)
	return ok && cfg.available()
}

// Default returns the configured default provider code.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultCode
}
