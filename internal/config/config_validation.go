// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks the merged [StructuredConfig]. Only source-independent
// invariants live here; completeness is checked on the client view.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.QuotaBytes < 0 || cfg.Storage.CompressionThreshold < 0 {
		return ErrInvalidStorageConfigs
	}
	if cfg.Workers.MaxRetries < 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.QuotaInterval <= 0 || cfg.Workers.MaxRetries <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Network.ProbeInterval <= 0 {
		return ErrInvalidNetworkConfigs
	}

	return nil
}
