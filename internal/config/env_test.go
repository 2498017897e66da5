// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFrom_AllSections(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, map[string]string{
		"APP_HEADLESS":                  "true",
		"APP_LOG_FILE":                  "/tmp/client.log",
		"ADAPTER_ADDRESS":               "http://api.local:8080",
		"ADAPTER_REQUEST_TIMEOUT":       "7s",
		"STORAGE_DB_DSN":                "/tmp/meal.db",
		"STORAGE_QUOTA_BYTES":           "1048576",
		"STORAGE_COMPRESSION_THRESHOLD": "2048",
		"SERVER_ADDRESS":                "127.0.0.1:8089",
		"NETWORK_PROBE_INTERVAL":        "15s",
		"WORKERS_SYNC_INTERVAL":         "2m",
		"WORKERS_MAX_RETRIES":           "5",
	})
	require.NoError(t, err)

	assert.True(t, cfg.App.Headless)
	assert.Equal(t, "/tmp/client.log", cfg.App.LogFile)
	assert.Equal(t, "http://api.local:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/meal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, int64(1048576), cfg.Storage.QuotaBytes)
	assert.Equal(t, 2048, cfg.Storage.CompressionThreshold)
	assert.Equal(t, "127.0.0.1:8089", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Network.ProbeInterval)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 5, cfg.Workers.MaxRetries)
}

func TestParseEnvFrom_Empty(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, map[string]string{}))
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseEnvFrom_InvalidValue(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, map[string]string{"WORKERS_SYNC_INTERVAL": "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
