// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-builder/internal/logger"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Environment variables that override file values.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "PORTFOLIO_PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvRateAllow   = "RATE_LIMIT_ALLOW" // comma-separated client IPs
	EnvRateDeny    = "RATE_LIMIT_DENY"
)

const (
	DefaultPort               = 8080
	DefaultConcurrency        = 4
	DefaultMaxUploadBytes     = 10 << 20
	DefaultRateLimitPerMinute = 120
	DefaultRateLimitBurst     = 20
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`                 // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL; empty disables the profile store

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // json or pretty
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`       // Print detailed debug information

	// Import
	Concurrency         int   `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`                     // Files parsed in parallel
	MaxUploadBytes      int64 `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`           // Request body limit
	CanonicalSkillNames bool  `json:"canonical_skill_names,omitempty" yaml:"canonical_skill_names,omitempty"` // Rewrite golang -> Go etc.

	// Rate limiting
	RateLimitDisabled  bool     `json:"rate_limit_disabled,omitempty" yaml:"rate_limit_disabled,omitempty"`
	RateLimitPerMinute int      `json:"rate_limit_per_minute,omitempty" yaml:"rate_limit_per_minute,omitempty"`
	RateLimitBurst     int      `json:"rate_limit_burst,omitempty" yaml:"rate_limit_burst,omitempty"`
	RateLimitAllow     []string `json:"rate_limit_allow,omitempty" yaml:"rate_limit_allow,omitempty"`
	RateLimitDeny      []string `json:"rate_limit_deny,omitempty" yaml:"rate_limit_deny,omitempty"`

	// Merge flags applied when a request does not carry its own
	Merge *types.MergeFlags `json:"merge,omitempty" yaml:"merge,omitempty"`
}

// DefaultMergeFlags merges every list and keeps the user's own contact details.
func DefaultMergeFlags() types.MergeFlags {
	return types.MergeFlags{
		OverwritePersonalInfo: false,
		MergeExperience:       true,
		MergeEducation:        true,
		MergeSkills:           true,
		EnhanceSummary:        true,
	}
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	flags := DefaultMergeFlags()
	return Config{
		Port:               DefaultPort,
		LogLevel:           DefaultLogLevel,
		LogFormat:          DefaultLogFormat,
		Concurrency:        DefaultConcurrency,
		MaxUploadBytes:     DefaultMaxUploadBytes,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		RateLimitBurst:     DefaultRateLimitBurst,
		Merge:              &flags,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load reads .env (when present), the optional config file, applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides file values with the Env* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a number: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvRateAllow); v != "" {
		c.RateLimitAllow = strings.Split(v, ",")
	}
	if v := os.Getenv(EnvRateDeny); v != "" {
		c.RateLimitDeny = strings.Split(v, ",")
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Zero values are accepted since MergeWithDefaults fills them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.RateLimitPerMinute < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: rate limit values must be non-negative")
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}
	if result.Merge == nil && defaults.Merge != nil {
		flags := *defaults.Merge
		result.Merge = &flags
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// MergeFlags returns the configured merge flags, or the defaults.
func (c *Config) MergeFlags() types.MergeFlags {
	if c.Merge == nil {
		return DefaultMergeFlags()
	}
	return *c.Merge
}

// LoggerConfig converts the logging fields into a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	level := c.LogLevel
	if c.Verbose {
		level = "debug"
	}
	return logger.Config{
		Level:  level,
		Format: c.LogFormat,
	}
}
