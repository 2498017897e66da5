// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

// ClientStorages groups the client-side storage layer.
type ClientStorages struct {
	// Store is the SQLite-backed entity, queue and bookkeeping store.
	Store LocalStore

	db    *DB
	codec *Codec
}

// NewClientStorages opens the SQLite database named by cfg.DSN, runs the
// schema migrations and wires a [LocalStore] with the configured quota
// source and compression codec.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	codec, err := NewCodec(cfg.CompressionThreshold)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("codec init failed: %w", err)
	}

	quota := NewQuotaSource(cfg.QuotaBytes, cfg.UseDiskQuota, db.Path())

	return &ClientStorages{
		Store: NewLocalStore(db, codec, quota, logger),
		db:    db,
		codec: codec,
	}, nil
}

// Close releases the database handle and the codec.
func (s *ClientStorages) Close() error {
	s.codec.Close()
	return s.db.Close()
}
