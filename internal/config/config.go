// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and env vars on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SeedPath points at a YAML league fixture loaded at startup.
	// Empty means start with an empty store.
	SeedPath string `koanf:"seed_path"`

	// MaxTopLimit caps GET /stats/top?limit.
	MaxTopLimit int `koanf:"max_top_limit"`

	// AllowedOrigins configures CORS. "*" allows any origin.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9090",
		MaxTopLimit:    50,
		AllowedOrigins: []string{"*"},
	}
}
