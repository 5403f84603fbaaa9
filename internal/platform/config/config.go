// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

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
  - DI-Friendly: Passed to core components (KV store, catalog source) via constructors.
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

// Supported key-value storage backends.
const (
	KVBackendRedis    = "redis"
	KVBackendPostgres = "postgres"
	KVBackendMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Dublix API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Catalog row store (PostgREST-style REST endpoint)
	CatalogURL    string `env:"CATALOG_URL,required"`
	CatalogAPIKey string `env:"CATALOG_API_KEY"`

	// CatalogCacheTTL bounds the read-through catalog cache; 0 disables it.
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	// KVBackend selects where user-state documents live: redis, postgres, or memory.
	KVBackend string `env:"KV_BACKEND" envDefault:"redis"`

	// Key-Value store (Redis backend and catalog cache)
	RedisURL string `env:"REDIS_URL"`

	// Key-Value store (PostgreSQL backend)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Backend-conditional requirements cannot be expressed as struct tags.
	switch cfg.KVBackend {
	case KVBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("config: REDIS_URL is required when KV_BACKEND=redis")
		}
	case KVBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when KV_BACKEND=postgres")
		}
	case KVBackendMemory:
		// No external dependency; state is lost on restart.
	default:
		return nil, fmt.Errorf("config: unknown KV_BACKEND %q", cfg.KVBackend)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins configured via EXTRA_ORIGINS
// (comma-separated).
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
