// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/internal/validators"
	"github.com/MKhiriev/go-meal-planner/models"
)

// deferredWriter writes a value to the local store, queues it for the
// server and asks for a flush when the device is online.
type deferredWriter struct {
	store     store.EntityRepository
	queue     SyncQueue
	governor  QuotaGovernor
	conn      Connectivity
	validator validators.Validator
	kick      func()
}

func (w *deferredWriter) validate(ctx context.Context, value any, fields ...string) error {
	if err := w.validator.Validate(ctx, value, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

func (w *deferredWriter) write(ctx context.Context, key models.PendingKey, changeType models.ChangeType, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	err = w.governor.WithCleanup(ctx, func(ctx context.Context) error {
		_, putErr := w.store.Put(ctx, models.StoredEntity{
			Collection: key.Collection,
			ID:         key.ID(),
			Payload:    payload,
			Metadata:   models.EntityMetadata{SyncStatus: models.SyncStatusPending},
		})
		return putErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "deferredWriter.write").
			Str("key", key.String()).
			Msg("failed to cache value")
		return fmt.Errorf("cache %s: %w", key, err)
	}

	return w.enqueue(ctx, key, changeType, payload)
}

// remove deletes the cached value and queues the deletion. payload tells the
// server what to delete.
func (w *deferredWriter) remove(ctx context.Context, key models.PendingKey, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err = w.store.Delete(ctx, key.Collection, key.ID()); err != nil {
		return fmt.Errorf("delete cached %s: %w", key, err)
	}

	return w.enqueue(ctx, key, models.ChangeDelete, payload)
}

func (w *deferredWriter) enqueue(ctx context.Context, key models.PendingKey, changeType models.ChangeType, payload json.RawMessage) error {
	err := w.governor.WithCleanup(ctx, func(ctx context.Context) error {
		_, enqueueErr := w.queue.Enqueue(ctx, key, changeType, payload)
		return enqueueErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "deferredWriter.enqueue").
			Str("key", key.String()).
			Msg("failed to queue change")
		return fmt.Errorf("queue %s: %w", key, err)
	}

	if w.kick != nil && w.conn.IsOnline() {
		w.kick()
	}
	return nil
}

func readCached[T any](ctx context.Context, entities store.EntityRepository, key models.PendingKey) (T, bool, error) {
	var v T

	e, found, err := entities.Get(ctx, key.Collection, key.ID())
	if err != nil || !found {
		return v, false, err
	}
	if err = e.Decode(&v); err != nil {
		return v, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return v, true, nil
}
