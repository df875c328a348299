// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. An optional .env file
in the working directory is loaded first; real environment variables win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Store Drivers

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the usergate API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the credential store backend.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`

	// Document Database (MongoDB). MongoURI wins over the credential triple.
	MongoURI        string `env:"MONGO_URI"`
	MongoUsername   string `env:"DATABASE_USERNAME"`
	MongoPassword   string `env:"DATABASE_USERNAME_PASSWORD"`
	MongoHost       string `env:"MONGO_HOST"       envDefault:"cluster1.hnszelp.mongodb.net"`
	MongoAppName    string `env:"MONGO_APP_NAME"   envDefault:"cluster1"`
	MongoDatabase   string `env:"MONGO_DATABASE"   envDefault:"FastDB"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"Users"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// Key-Value Store (Redis)
	RedisURL string `env:"REDIS_URL"`

	// Token signing. The secret is checked by the token service, so tools
	// that never sign tokens can run without it.
	TokenSecret    string        `env:"PASSWORD_ENCODING_KEY"`
	TokenAlgorithm string        `env:"JWT_ALGORITHM"  envDefault:"HS256"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"30m"`

	// Password hashing
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env file is the normal case in containers.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current process environment onto a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field requirements that struct tags cannot express.
func (c *Config) Validate() error {
	if c.AccessTokenTTL <= 0 {
		return errors.New("config: JWT_ACCESS_TTL must be positive")
	}

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" && (c.MongoUsername == "" || c.MongoPassword == "") {
			return errors.New("config: mongo driver needs MONGO_URI or DATABASE_USERNAME and DATABASE_USERNAME_PASSWORD")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: postgres driver needs DATABASE_URL")
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return errors.New("config: redis driver needs REDIS_URL")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	return nil
}

// MongoConnectionURI returns the MongoDB connection string.
//
// When MONGO_URI is unset the Atlas SRV form is assembled from the credential
// variables, with both parts escaped.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}

	uri := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(c.MongoUsername, c.MongoPassword),
		Host:   c.MongoHost,
		Path:   "/",
	}

	query := url.Values{}
	query.Set("retryWrites", "true")
	query.Set("w", "majority")
	query.Set("appName", c.MongoAppName)
	uri.RawQuery = query.Encode()

	return uri.String()
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
