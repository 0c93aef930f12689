package ratelimit

import (
	"net/http"
	"strings"
)

// HealthPath is never rate limited.
const HealthPath = "/health"

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Exact paths win over prefixes; a configured path ending in "/" matches
// everything below it ("/v1/profiles/" matches "/v1/profiles/{id}/import").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == HealthPath && method == http.MethodGet {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
