// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging defaults, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the log file location.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote API endpoint and transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds local SQLite store and quota settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local control API listen address used by the UI layer.
	Server Server `envPrefix:"SERVER_"`

	// Network holds connectivity probing settings.
	Network Network `envPrefix:"NETWORK_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// LogFile is the path of the rotating client log file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Headless disables the terminal status screen.
	// Env: APP_HEADLESS
	Headless bool `env:"HEADLESS"`
}

// Adapter holds the remote API settings.
type Adapter struct {
	// HTTPAddress is the base URL or host:port of the meal planner API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthToken is an opaque bearer token attached to every request.
	// Authentication itself is handled elsewhere.
	// Env: ADAPTER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`
}

// Storage groups the local store settings.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`

	// QuotaBytes is a fixed storage quota. Zero means "not configured".
	// Env: STORAGE_QUOTA_BYTES
	QuotaBytes int64 `env:"QUOTA_BYTES"`

	// UseDiskQuota derives the quota from the disk holding the database file
	// when QuotaBytes is zero.
	// Env: STORAGE_USE_DISK_QUOTA
	UseDiskQuota bool `env:"USE_DISK_QUOTA"`

	// CompressionThreshold is the payload size in bytes above which payloads
	// are stored zstd-compressed. Zero disables compression on write.
	// Env: STORAGE_COMPRESSION_THRESHOLD
	CompressionThreshold int `env:"COMPRESSION_THRESHOLD"`

	// MaxAge is the age after which synced entities are evicted by standard
	// cleanup.
	// Env: STORAGE_MAX_AGE
	MaxAge time.Duration `env:"MAX_AGE"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path or DSN.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds the local control API settings.
type Server struct {
	// HTTPAddress is the host:port the control API listens on. Empty disables it.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Network holds connectivity probe settings.
type Network struct {
	// ProbeInterval is how often the remote health endpoint is probed.
	// Env: NETWORK_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval is the periodic safety-net flush interval.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// QuotaInterval is how often storage usage is reconciled.
	// Env: WORKERS_QUOTA_INTERVAL
	QuotaInterval time.Duration `env:"QUOTA_INTERVAL"`

	// MaxRetries is the number of recoverable failures after which a queued
	// change is dropped.
	// Env: WORKERS_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// defaultConfig returns the built-in defaults merged underneath every source.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{RequestTimeout: 10 * time.Second},
		Storage: Storage{
			DB:                   DB{DSN: "meal-planner.db"},
			CompressionThreshold: 4096,
			MaxAge:               7 * 24 * time.Hour,
		},
		Server:  Server{HTTPAddress: "127.0.0.1:8089"},
		Network: Network{ProbeInterval: 10 * time.Second},
		Workers: Workers{
			SyncInterval:  30 * time.Second,
			QuotaInterval: 5 * time.Minute,
			MaxRetries:    3,
		},
	}
}

// GetStructuredConfig loads and merges configuration from defaults, the
// environment, args (command-line flags without the program name) and the
// JSON file named by either of them.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
