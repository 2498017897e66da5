// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		LogFile  string `json:"log_file"`
		Headless bool   `json:"headless"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AuthToken      string   `json:"auth_token"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		QuotaBytes           int64    `json:"quota_bytes"`
		UseDiskQuota         bool     `json:"use_disk_quota"`
		CompressionThreshold int      `json:"compression_threshold"`
		MaxAge               Duration `json:"max_age"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`

	Network struct {
		ProbeInterval Duration `json:"probe_interval"`
	} `json:"network,omitempty"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval"`
		QuotaInterval Duration `json:"quota_interval"`
		MaxRetries    int      `json:"max_retries"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogFile:  jsonCfg.App.LogFile,
			Headless: jsonCfg.App.Headless,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			AuthToken:      jsonCfg.Adapter.AuthToken,
		},
		Storage: Storage{
			DB:                   DB{DSN: jsonCfg.Storage.DB.DSN},
			QuotaBytes:           jsonCfg.Storage.QuotaBytes,
			UseDiskQuota:         jsonCfg.Storage.UseDiskQuota,
			CompressionThreshold: jsonCfg.Storage.CompressionThreshold,
			MaxAge:               time.Duration(jsonCfg.Storage.MaxAge),
		},
		Server:  Server{HTTPAddress: jsonCfg.Server.HTTPAddress},
		Network: Network{ProbeInterval: time.Duration(jsonCfg.Network.ProbeInterval)},
		Workers: Workers{
			SyncInterval:  time.Duration(jsonCfg.Workers.SyncInterval),
			QuotaInterval: time.Duration(jsonCfg.Workers.QuotaInterval),
			MaxRetries:    jsonCfg.Workers.MaxRetries,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
