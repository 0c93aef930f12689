package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig overrides the default budget for one route. A Path ending in
// "/" covers everything below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // Limit when zero
}

// Options is the subset of application config the limiter is built from.
type Options struct {
	Disabled  bool
	PerMinute int
	Burst     int
	Allow     []string // client IDs never limited
	Deny      []string // client IDs always rejected
}

// NewConfig builds the limiter configuration for the API routes.
func NewConfig(opts Options) *Config {
	if opts.Disabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    opts.PerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    opts.Burst,
		CleanupInterval: 5 * time.Minute,
		Allow:           clientSet(opts.Allow),
		Deny:            clientSet(opts.Deny),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs gives decoding routes the tightest budget. Reads fall
// through to the default and /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	decode := func(path string) EndpointConfig {
		return EndpointConfig{Path: path, Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5}
	}
	write := func(path, method string) EndpointConfig {
		return EndpointConfig{Path: path, Method: method, Limit: 60, Window: time.Minute, Burst: 10}
	}
	return []EndpointConfig{
		decode("/v1/parse"),
		decode("/v1/profiles/"), // imports
		write("/v1/sections", http.MethodPost),
		write("/v1/external/", http.MethodPost),
		write("/v1/profiles", http.MethodPost),
		write("/v1/profiles/", http.MethodPut),
		write("/v1/profiles/", http.MethodDelete),
	}
}

func clientSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
