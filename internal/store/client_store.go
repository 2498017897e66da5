// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

// localStore is the SQLite implementation of [LocalStore].
type localStore struct {
	*DB
	codec  *Codec
	quota  QuotaSource
	logger *logger.Logger

	// mu serialises read-modify-write sequences (upserts, queue merges).
	mu sync.Mutex

	deviceOnce sync.Mutex
	deviceID   string

	now func() time.Time
}

// NewLocalStore builds a [LocalStore] over db. quota may be nil, in which case
// usage is reported as {0,0,0}.
func NewLocalStore(db *DB, codec *Codec, quota QuotaSource, logger *logger.Logger) LocalStore {
	return &localStore{
		DB:     db,
		codec:  codec,
		quota:  quota,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}
