// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sanctorale/sanctorale/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the Sanctorale API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RedisURL is optional; without it the stats snapshot is cached in process.
	RedisURL string `env:"REDIS_URL"`

	// Token verification. The private key is only needed to mint tokens.
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// AuthzPolicyPath overrides the embedded role policy when set.
	AuthzPolicyPath string `env:"AUTHZ_POLICY_PATH"`

	// Statistics cache
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"10m"`

	// AppTimezone decides what "today" means for the calendar endpoints.
	AppTimezone string `env:"APP_TIMEZONE" envDefault:"UTC"`

	// Cross-Origin Resource Sharing
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize fills platform defaults and rejects values that cannot work.
func (c *Config) normalize() error {
	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = constants.DefaultRateLimitRPS
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = constants.DefaultRateLimitBurst
	}
	if c.StatsCacheTTL <= 0 {
		return fmt.Errorf("config: STATS_CACHE_TTL must be positive, got %s", c.StatsCacheTTL)
	}
	if _, err := time.LoadLocation(c.AppTimezone); err != nil {
		return fmt.Errorf("config: invalid APP_TIMEZONE %q: %w", c.AppTimezone, err)
	}
	return nil
}

// Location returns the configured calendar timezone.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
