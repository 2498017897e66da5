// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
	"github.com/MKhiriev/go-meal-planner/models"
)

type syncQueue struct {
	queue      store.QueueRepository
	ids        utils.IDGenerator
	maxRetries int
	now        func() time.Time
	onChange   func(ctx context.Context)

	logger *logger.Logger
}

// NewSyncQueue builds a queue over the durable queue table. maxRetries <= 0
// uses [models.DefaultMaxRetries].
func NewSyncQueue(queue store.QueueRepository, ids utils.IDGenerator, maxRetries int, logger *logger.Logger) SyncQueue {
	return newSyncQueue(queue, ids, maxRetries, logger)
}

func newSyncQueue(queue store.QueueRepository, ids utils.IDGenerator, maxRetries int, logger *logger.Logger) *syncQueue {
	if maxRetries <= 0 {
		maxRetries = models.DefaultMaxRetries
	}

	return &syncQueue{
		queue:      queue,
		ids:        ids,
		maxRetries: maxRetries,
		now:        time.Now,
		logger:     logger,
	}
}

func (q *syncQueue) Enqueue(ctx context.Context, key models.PendingKey, changeType models.ChangeType, desired json.RawMessage) (*models.SyncQueueEntry, error) {
	log := logger.FromContext(ctx)

	if key.Collection == "" || len(key.Parts) == 0 {
		log.Error().Str("func", "syncQueue.Enqueue").Msg("empty pending key")
		return nil, fmt.Errorf("%w: empty pending key", ErrInvalidDataProvided)
	}
	switch changeType {
	case models.ChangeCreate, models.ChangeUpdate, models.ChangeDelete:
	default:
		log.Error().Str("func", "syncQueue.Enqueue").Str("type", string(changeType)).Msg("unknown change type")
		return nil, fmt.Errorf("%w: unknown change type %q", ErrInvalidDataProvided, changeType)
	}

	incoming := models.SyncQueueEntry{
		Collection: key.Collection,
		TargetID:   key.ID(),
		Type:       changeType,
		Payload:    desired,
		Timestamp:  q.now().UTC(),
		MaxRetries: q.maxRetries,
	}

	entry, err := q.queue.UpsertQueueEntry(ctx, incoming.Collection, incoming.TargetID, func(existing *models.SyncQueueEntry) *models.SyncQueueEntry {
		return coalesce(existing, incoming, q.ids)
	})
	if err != nil {
		log.Err(err).Str("func", "syncQueue.Enqueue").Str("key", key.String()).Msg("failed to enqueue change")
		return nil, fmt.Errorf("enqueue %s: %w", key, err)
	}

	if q.onChange != nil {
		q.onChange(ctx)
	}

	return entry, nil
}

func (q *syncQueue) Pending(ctx context.Context) ([]models.SyncQueueEntry, error) {
	return q.queue.ListQueue(ctx)
}

func (q *syncQueue) PendingCount(ctx context.Context) (int, error) {
	return q.queue.CountQueue(ctx)
}

// coalesce merges incoming into the pending entry of the same key. The
// result keeps the original entry ID. A create followed by a delete leaves
// nothing to send only while the create was never handed to the server;
// otherwise the server may hold it and the delete must be sent. A delete
// followed by a create is an update of the server copy. The retry counter
// survives only when the change did not.
func coalesce(existing *models.SyncQueueEntry, incoming models.SyncQueueEntry, ids utils.IDGenerator) *models.SyncQueueEntry {
	next := incoming
	if existing == nil {
		next.ID = ids.Generate()
		return &next
	}

	next.ID = existing.ID
	next.Attempted = existing.Attempted
	switch {
	case existing.Type == models.ChangeCreate && incoming.Type == models.ChangeDelete:
		if !existing.Attempted && existing.RetryCount == 0 {
			return nil
		}
	case existing.Type == models.ChangeCreate:
		next.Type = models.ChangeCreate
	case existing.Type == models.ChangeDelete && incoming.Type == models.ChangeCreate:
		next.Type = models.ChangeUpdate
	}

	if bytes.Equal(existing.Payload, incoming.Payload) && existing.Type == next.Type {
		next.RetryCount = existing.RetryCount
	}

	return &next
}
