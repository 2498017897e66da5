// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds process-level client settings.
type ClientApp struct {
	LogFile  string
	Headless bool
}

// ClientAdapter holds network settings used by the remote adapter.
type ClientAdapter struct {
	// HTTPAddress is the remote API base address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// AuthToken is attached as a bearer token when non-empty.
	AuthToken string
}

// ClientStorage holds local store settings.
type ClientStorage struct {
	DSN                  string
	QuotaBytes           int64
	UseDiskQuota         bool
	CompressionThreshold int
	MaxAge               time.Duration
}

// ClientServer holds the local control API settings.
type ClientServer struct {
	HTTPAddress string
}

// ClientNetwork holds connectivity probe settings.
type ClientNetwork struct {
	ProbeInterval time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the safety-net flush runs.
	SyncInterval time.Duration
	// QuotaInterval defines how often storage usage is reconciled.
	QuotaInterval time.Duration
	// MaxRetries caps recoverable failures per queued change.
	MaxRetries int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Server  ClientServer
	Network ClientNetwork
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client view of the merged
// structured configuration. args are the command-line arguments without the
// program name.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			LogFile:  cfg.App.LogFile,
			Headless: cfg.App.Headless,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			AuthToken:      cfg.Adapter.AuthToken,
		},
		Storage: ClientStorage{
			DSN:                  cfg.Storage.DB.DSN,
			QuotaBytes:           cfg.Storage.QuotaBytes,
			UseDiskQuota:         cfg.Storage.UseDiskQuota,
			CompressionThreshold: cfg.Storage.CompressionThreshold,
			MaxAge:               cfg.Storage.MaxAge,
		},
		Server:  ClientServer{HTTPAddress: cfg.Server.HTTPAddress},
		Network: ClientNetwork{ProbeInterval: cfg.Network.ProbeInterval},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			QuotaInterval: cfg.Workers.QuotaInterval,
			MaxRetries:    cfg.Workers.MaxRetries,
		},
	}
}
