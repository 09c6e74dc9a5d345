// Package config provides configuration loading for raindropd.
//
// Configuration is loaded from a YAML file with environment variable
// overrides. The only required setting is the Raindrop.io API token.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete raindropd configuration.
type Config struct {
	Raindrop  RaindropConfig  `koanf:"raindrop"`
	Server    ServerConfig    `koanf:"server"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Log       LogConfig       `koanf:"log"`
}

// RaindropConfig holds Raindrop.io API client configuration.
type RaindropConfig struct {
	// Token is the Raindrop.io bearer token. Required.
	Token Secret `koanf:"token"`

	// BaseURL overrides the API root. Defaults to the public v1 endpoint.
	BaseURL string `koanf:"base_url"`

	// Timeout is the HTTP client timeout for remote calls.
	Timeout time.Duration `koanf:"timeout"`
}

// ServerConfig holds HTTP transport configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RateLimitConfig holds per-client rate limiting for the HTTP transports.
type RateLimitConfig struct {
	Enabled   bool `koanf:"enabled"`
	PerMinute int  `koanf:"per_minute"`
	Burst     int  `koanf:"burst"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`
}

// DefaultRaindropBaseURL is the public Raindrop.io REST API v1 root.
const DefaultRaindropBaseURL = "https://api.raindrop.io/rest/v1"

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Raindrop.BaseURL == "" {
		cfg.Raindrop.BaseURL = DefaultRaindropBaseURL
	}
	if cfg.Raindrop.Timeout == 0 {
		cfg.Raindrop.Timeout = 30 * time.Second
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 20
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate validates the configuration.
//
// Returns an error if:
//   - The Raindrop API token is missing
//   - The server port is not between 1 and 65535
//   - The shutdown timeout is not positive
//   - Rate limit values are not positive while enabled
func (c *Config) Validate() error {
	if !c.Raindrop.Token.IsSet() {
		return errors.New("raindrop API token is required (set RAINDROP_TOKEN)")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.PerMinute < 1 {
			return fmt.Errorf("ratelimit per_minute must be positive, got %d", c.RateLimit.PerMinute)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("ratelimit burst must be positive, got %d", c.RateLimit.Burst)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	return nil
}
