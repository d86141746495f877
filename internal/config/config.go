// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the
// drink-ledger server. It aggregates all sub-configurations and is populated
// by merging defaults, an optional JSON file, environment variables and
// command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: admin secret, session tokens,
	// business time zone and version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Metrics holds the Prometheus exposition settings.
	Metrics Metrics `envPrefix:"METRICS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// AdminPassword is the shared administrator secret checked by
	// POST /api/admin/login. Compared in plaintext.
	// Env: APP_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// TokenSignKey is the secret key used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// TimeZone is the IANA name of the office time zone. It defines month
	// keys of the purchase history and the hour buckets of the peak-hour
	// report ("Local" means the server's zone).
	// Env: APP_TIME_ZONE
	TimeZone string `env:"TIME_ZONE"`

	// LogLevel is the minimal zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Location resolves TimeZone into a *time.Location.
func (a App) Location() (*time.Location, error) {
	if a.TimeZone == "" || a.TimeZone == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("error loading time zone %q: %w", a.TimeZone, err)
	}

	return loc, nil
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects both the backend and the connection:
	// "postgres://..." uses PostgreSQL through pgx, "file:..." or a path
	// ending with ".db" uses SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns caps the connection pool. Zero keeps the default.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before its context is cancelled.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Metrics holds Prometheus settings.
type Metrics struct {
	// Path is the route serving the Prometheus exposition format.
	// Env: METRICS_PATH
	Path string `env:"PATH"`
}

// defaultConfig holds the values used when no source sets a field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "drink-ledger",
			TokenDuration: 12 * time.Hour,
			TimeZone:      "Local",
			LogLevel:      "debug",
			Version:       "dev",
		},
		Server: Server{
			HTTPAddress:    "localhost:5000",
			RequestTimeout: 30 * time.Second,
		},
		Metrics: Metrics{
			Path: "/metrics",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order
// (later sources win for non-zero fields):
//  1. Built-in defaults
//  2. JSON file (path resolved from sources 3 and 4)
//  3. Environment variables
//  4. Command-line flags
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
