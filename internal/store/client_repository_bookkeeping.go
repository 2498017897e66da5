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
	"github.com/MKhiriev/go-meal-planner/internal/utils"
)

func (l *localStore) GetBookkeeping(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := l.QueryRowContext(ctx, getBookkeeping, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.GetBookkeeping").
			Str("key", key).
			Msg("failed to read bookkeeping value")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, true, nil
}

func (l *localStore) SetBookkeeping(ctx context.Context, key, value string) error {
	if _, err := l.ExecContext(ctx, setBookkeeping, key, value); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.SetBookkeeping").
			Str("key", key).
			Msg("failed to write bookkeeping value")
		return l.writeError("bookkeeping", "", key, err)
	}
	return nil
}

// GetTime returns nil when the key was never written.
func (l *localStore) GetTime(ctx context.Context, key string) (*time.Time, error) {
	value, ok, err := l.GetBookkeeping(ctx, key)
	if err != nil || !ok {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("malformed time under %q: %w", key, err)
	}
	return &t, nil
}

func (l *localStore) SetTime(ctx context.Context, key string, t time.Time) error {
	return l.SetBookkeeping(ctx, key, t.UTC().Format(time.RFC3339Nano))
}

func (l *localStore) DeviceID(ctx context.Context) (string, error) {
	l.deviceOnce.Lock()
	defer l.deviceOnce.Unlock()

	if l.deviceID != "" {
		return l.deviceID, nil
	}

	if _, err := l.ExecContext(ctx, insertBookkeepingIfMissing, KeyDeviceID, utils.NewUUIDGenerator().Generate()); err != nil {
		return "", fmt.Errorf("failed to create device id: %w", err)
	}

	id, _, err := l.GetBookkeeping(ctx, KeyDeviceID)
	if err != nil {
		return "", err
	}
	l.deviceID = id

	return id, nil
}
