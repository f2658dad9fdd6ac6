// Copyright (c) 2026 Inkpress. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (hasher, token service, stores) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Inkpress API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./db/migrations"`

	// Key-Value Cache (Redis) — sign-in throttling and readiness checks.
	RedisURL string `env:"REDIS_URL,required"`

	// Password key derivation. The pepper is a process-wide secret mixed into
	// every password before hashing. It must never be logged or returned.
	PasswordPepper     string `env:"PASSWORD_PEPPER,required"`
	PasswordIterations int    `env:"PASSWORD_ITERATIONS" envDefault:"100000"`
	PasswordKeyLength  int    `env:"PASSWORD_KEY_LENGTH" envDefault:"256"`

	// Session token signing. SessionTTL is the single canonical expiry knob.
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"48h"`

	// Pagination bounds applied to every list endpoint.
	PageMinLimit     int `env:"PAGE_MIN_LIMIT"     envDefault:"1"`
	PageMaxLimit     int `env:"PAGE_MAX_LIMIT"     envDefault:"100"`
	PageDefaultLimit int `env:"PAGE_DEFAULT_LIMIT" envDefault:"20"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.PageMinLimit < 1 || cfg.PageMaxLimit < cfg.PageMinLimit {
		return nil, fmt.Errorf("config: invalid pagination bounds [%d, %d]", cfg.PageMinLimit, cfg.PageMaxLimit)
	}

	if cfg.PageDefaultLimit < cfg.PageMinLimit || cfg.PageDefaultLimit > cfg.PageMaxLimit {
		return nil, fmt.Errorf("config: default limit %d outside bounds [%d, %d]",
			cfg.PageDefaultLimit, cfg.PageMinLimit, cfg.PageMaxLimit)
	}

	return cfg, nil
}

// AllowedExtraOrigins returns the comma-separated EXTRA_ORIGINS entries that
// CORS should accept beyond the first-party domains.
func (c *Config) AllowedExtraOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}
	origins := strings.Split(c.ExtraOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
