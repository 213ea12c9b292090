// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the reference remote store. It is populated by merging
// built-in defaults, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the local record store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and timeout settings of the reference
	// remote store.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings the client uses to reach the remote store.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Identity holds the token endpoint used to refresh identity tokens.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Workers holds scheduling settings of the sync job and the
	// connectivity monitor.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the client log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args holds the positional command-line arguments left after the
	// flags, e.g. the client command.
	Args []string `json:"-"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the HMAC key the reference remote store signs and
	// verifies identity tokens with.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an identity token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// RefreshTokenDuration is the lifetime of a refresh token.
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration of the local record store.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings of the SQLite local record store.
type DB struct {
	// DSN is the SQLite file path (e.g. "./fittrackr.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings of the reference remote store.
type Server struct {
	// HTTPAddress is the "host:port" the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// DevSessions mounts POST /api/auth/session, which issues a token pair
	// for any user id without credentials. Development only; off by default.
	// Env: SERVER_DEV_SESSIONS
	DevSessions bool `env:"DEV_SESSIONS"`
}

// Adapter holds the client-side settings of the remote client.
type Adapter struct {
	// HTTPAddress is the base URL of the remote store
	// (e.g. "https://api.example.com" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every remote call. An expired call is treated as
	// a network failure.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HealthPath is the unauthenticated path the connectivity monitor probes.
	// Env: ADAPTER_HEALTH_PATH
	HealthPath string `env:"HEALTH_PATH"`
}

// Identity holds the settings of the token refresh endpoint.
type Identity struct {
	// TokenURL is the refresh-token grant endpoint.
	// Env: IDENTITY_TOKEN_URL
	TokenURL string `env:"TOKEN_URL"`

	// APIKey is sent as the client_id of the refresh request when set.
	// Env: IDENTITY_API_KEY
	APIKey string `env:"API_KEY"`
}

// Workers holds configuration of the background sync machinery.
type Workers struct {
	// SyncInterval is the period of the scheduled sync run.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval is the period of connectivity probes.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// StableProbes is the number of consecutive successful probes required
	// before the remote store is reported reachable.
	// Env: WORKERS_STABLE_PROBES
	StableProbes int `env:"STABLE_PROBES"`

	// RetryBase and RetryCap bound the exponential backoff applied after a
	// run that asked to be retried.
	// Env: WORKERS_RETRY_BASE, WORKERS_RETRY_CAP
	RetryBase time.Duration `env:"RETRY_BASE"`
	RetryCap  time.Duration `env:"RETRY_CAP"`

	// QuarantineRejected moves records the remote store rejects to the failed
	// state instead of retrying them on every run.
	// Env: WORKERS_QUARANTINE_REJECTED
	QuarantineRejected bool `env:"QUARANTINE_REJECTED"`

	// TriggerOnWrite asks for a sync run right after each local write.
	// Env: WORKERS_TRIGGER_ON_WRITE
	TriggerOnWrite bool `env:"TRIGGER_ON_WRITE"`
}

// Log holds client log file settings.
type Log struct {
	// FilePath is the client log file. Empty places it next to the binary.
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// Default values applied before any other source.
const (
	DefaultSyncInterval   = 15 * time.Minute
	DefaultProbeInterval  = 30 * time.Second
	DefaultStableProbes   = 2
	DefaultRetryBase      = 30 * time.Second
	DefaultRetryCap       = 10 * time.Minute
	DefaultRequestTimeout = 30 * time.Second
	DefaultHealthPath     = "/health"
	DefaultTokenDuration  = time.Hour
	DefaultRefreshTTL     = 30 * 24 * time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenDuration:        DefaultTokenDuration,
			RefreshTokenDuration: DefaultRefreshTTL,
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultRequestTimeout,
			HealthPath:     DefaultHealthPath,
		},
		Workers: Workers{
			SyncInterval:  DefaultSyncInterval,
			ProbeInterval: DefaultProbeInterval,
			StableProbes:  DefaultStableProbes,
			RetryBase:     DefaultRetryBase,
			RetryCap:      DefaultRetryCap,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override non-zero fields of earlier ones):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
