// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs replace earlier ones while zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{Workers: Workers{SyncInterval: time.Minute}},
		&StructuredConfig{Adapter: Adapter{HTTPAddress: "http://api.local"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, "http://api.local", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3, cfg.Workers.MaxRetries, "default must survive")
	assert.Equal(t, "meal-planner.db", cfg.Storage.DB.DSN)
}

func TestBuild_RejectsNegativeQuota(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{QuotaBytes: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "http://env-api")
	t.Setenv("WORKERS_SYNC_INTERVAL", "45s")
	t.Setenv("STORAGE_QUOTA_BYTES", "10000000")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://env-api", b.configs[0].Adapter.HTTPAddress)
	assert.Equal(t, 45*time.Second, b.configs[0].Workers.SyncInterval)
	assert.Equal(t, int64(10_000_000), b.configs[0].Storage.QuotaBytes)
}

func TestWithEnv_InvalidValueSetsError(t *testing.T) {
	t.Setenv("WORKERS_SYNC_INTERVAL", "not-a-duration")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsParsedConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "http://flag-api", "-d", "flag.db"})

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://flag-api", b.configs[0].Adapter.HTTPAddress)
	assert.Equal(t, "flag.db", b.configs[0].Storage.DB.DSN)
}

func TestWithFlags_UnknownFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-no-such-flag"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.HTTPAddress = "http://json-api"
	payload.Workers.SyncInterval = Duration(2 * time.Minute)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "http://json-api", b.configs[1].Adapter.HTTPAddress)
	assert.Equal(t, 2*time.Minute, b.configs[1].Workers.SyncInterval)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Storage.DB.DSN = "last-wins.db"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins.db", b.configs[2].Storage.DB.DSN)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

func TestGetClientConfig_DefaultsPlusAddress(t *testing.T) {
	cfg, err := GetClientConfig([]string{"-a", "http://api.local"})
	require.NoError(t, err)

	assert.Equal(t, "http://api.local", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, 3, cfg.Workers.MaxRetries)
	assert.Equal(t, 4096, cfg.Storage.CompressionThreshold)
}

func TestGetClientConfig_MissingAdapterAddress(t *testing.T) {
	_, err := GetClientConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestClientConfigValidate(t *testing.T) {
	valid := func() *ClientConfig {
		return newClientConfig(&StructuredConfig{
			Adapter: Adapter{HTTPAddress: "http://api", RequestTimeout: time.Second},
			Storage: Storage{DB: DB{DSN: "x.db"}},
			Network: Network{ProbeInterval: time.Second},
			Workers: Workers{SyncInterval: time.Second, QuotaInterval: time.Second, MaxRetries: 3},
		})
	}

	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero sync interval", mutate: func(c *ClientConfig) { c.Workers.SyncInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "zero retries", mutate: func(c *ClientConfig) { c.Workers.MaxRetries = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "zero probe", mutate: func(c *ClientConfig) { c.Network.ProbeInterval = 0 }, wantErr: ErrInvalidNetworkConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
