// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/models"
)

func (l *localStore) EstimateUsage(ctx context.Context) (models.StorageUsage, error) {
	if l.quota == nil {
		return models.StorageUsage{}, nil
	}

	var used int64
	if err := l.QueryRowContext(ctx, storeFootprint).Scan(&used); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localStore.EstimateUsage").Msg("failed to measure store footprint")
		return models.StorageUsage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	available, err := l.quota.Available(ctx, used)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localStore.EstimateUsage").Msg("failed to read quota")
		return models.StorageUsage{}, fmt.Errorf("failed to read quota: %w", err)
	}

	return models.NewStorageUsage(used, available), nil
}

func (l *localStore) Initialized(ctx context.Context) error {
	if l.DB == nil || l.DB.DB == nil {
		return ErrStoreNotInitialized
	}

	var tables int
	if err := l.QueryRowContext(ctx, schemaReady).Scan(&tables); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreNotInitialized, err)
	}
	if tables < 3 {
		return fmt.Errorf("%w: schema has %d of 3 tables", ErrStoreNotInitialized, tables)
	}

	return nil
}

func (l *localStore) DeleteSyncedOlderThan(ctx context.Context, collection string, cutoff time.Time) (int64, error) {
	query, args, err := buildDeleteSyncedOlderThanQuery(collection, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := l.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.DeleteSyncedOlderThan").
			Str("collection", collection).
			Time("cutoff", cutoff).
			Msg("failed to evict entities")
		return 0, l.writeError("evict", collection, "", err)
	}

	n, _ := res.RowsAffected()
	return n, nil
}

func (l *localStore) ListUncompressedLarger(ctx context.Context, threshold int) ([]EntityRef, error) {
	query, args, err := buildListUncompressedLargerQuery(threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var refs []EntityRef
	for rows.Next() {
		var ref EntityRef
		if err = rows.Scan(&ref.Collection, &ref.ID, &ref.Size); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		refs = append(refs, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return refs, nil
}

func (l *localStore) Compress(ctx context.Context, collection, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		data       []byte
		compressed bool
	)
	err := l.QueryRowContext(ctx, getEntityPayload, collection, id).Scan(&data, &compressed)
	if errors.Is(err, sql.ErrNoRows) || compressed {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	packed, ok := l.codec.Compress(data)
	if !ok {
		return false, nil
	}

	if _, err = l.ExecContext(ctx, setEntityPayloadCompressed, packed, len(packed), collection, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Compress").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to store compressed payload")
		return false, l.writeError("compress", collection, id, err)
	}

	return true, nil
}

func (l *localStore) Vacuum(ctx context.Context) error {
	if _, err := l.ExecContext(ctx, "VACUUM;"); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
