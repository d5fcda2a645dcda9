// Copyright (c) 2026 Yomira. All rights reserved.
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
  - DI-Friendly: Passed to core components (store client, server) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the CreatorVerse server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"json"`

	// Store selects and configures the creator data store.
	StoreBackend string        `env:"STORE_BACKEND" envDefault:"rest"`
	StoreURL     string        `env:"STORE_URL"`
	StoreAPIKey  string        `env:"STORE_API_KEY"`
	StoreTable   string        `env:"STORE_TABLE"   envDefault:"creators"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`

	// Relational Database (postgres backend only)
	DatabaseURL       string        `env:"DATABASE_URL"`
	RunMigrations     bool          `env:"RUN_MIGRATIONS"        envDefault:"false"`
	DBMaxConns        int32         `env:"DB_MAX_CONNS"          envDefault:"10"`
	DBMinConns        int32         `env:"DB_MIN_CONNS"          envDefault:"1"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME"  envDefault:"60m"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	DBConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT"    envDefault:"5s"`

	// Cross-Origin Resource Sharing for the JSON API
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// Store is the immutable connection setting for the remote REST store.
//
// It is built once at start-up and passed by value to the store client.
type Store struct {
	BaseURL string
	APIKey  string
	Table   string
	Timeout time.Duration
}

// Database is the immutable connection pool setting for the postgres backend.
type Database struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the requirements of the selected store backend.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendREST:
		if c.StoreURL == "" {
			return errors.New("config: STORE_URL is required when STORE_BACKEND=rest")
		}
		parsed, err := url.Parse(c.StoreURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: STORE_URL %q is not an absolute URL", c.StoreURL)
		}
		if c.StoreAPIKey == "" {
			return errors.New("config: STORE_API_KEY is required when STORE_BACKEND=rest")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required when STORE_BACKEND=postgres")
		}
		if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("config: DB_MIN_CONNS (%d) and DB_MAX_CONNS (%d) must satisfy 0 <= min <= max, max > 0", c.DBMinConns, c.DBMaxConns)
		}
		if c.DBConnectTimeout <= 0 {
			return errors.New("config: DB_CONNECT_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q (want %q or %q)", c.StoreBackend, BackendREST, BackendPostgres)
	}

	if c.StoreTable == "" {
		return errors.New("config: STORE_TABLE must not be empty")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("config: STORE_TIMEOUT must be positive")
	}
	if c.RateLimitRPS <= 0 {
		return errors.New("config: RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return errors.New("config: RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// Store returns the REST store settings as an immutable value.
func (c *Config) Store() Store {
	return Store{
		BaseURL: strings.TrimRight(c.StoreURL, "/"),
		APIKey:  c.StoreAPIKey,
		Table:   c.StoreTable,
		Timeout: c.StoreTimeout,
	}
}

// Database returns the postgres pool settings as an immutable value.
func (c *Config) Database() Database {
	return Database{
		URL:             c.DatabaseURL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: c.DBMaxConnLifetime,
		MaxConnIdleTime: c.DBMaxConnIdleTime,
		ConnectTimeout:  c.DBConnectTimeout,
	}
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
