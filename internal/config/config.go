// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and EXAMPREP_* env vars.
// - Validation failures wrap ErrInvalidConfig; source failures wrap ErrLoadConfig.
package config

import (
	"context"
	"time"
)

// Default values.
const (
	defaultAddr            = ":8000"
	defaultMaxBodyBytes    = 1 << 20
	defaultShutdownTimeout = 30 * time.Second
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// CatalogPath optionally replaces the built-in topic catalog with a YAML file.
	CatalogPath string `koanf:"catalog_path"`

	// FillFromSample makes POST /solve copy a sample's data when the request
	// names sample_id but carries no data.
	FillFromSample bool `koanf:"fill_from_sample"`

	// MaxBodyBytes caps the size of request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// ShutdownTimeoutMS bounds graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              defaultAddr,
		MaxBodyBytes:      defaultMaxBodyBytes,
		ShutdownTimeoutMS: int(defaultShutdownTimeout / time.Millisecond),
	}
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
