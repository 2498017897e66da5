// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tiendc/go-deepcopy"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/models"
)

type entityKey struct {
	collection string
	id         string
}

type optimisticManager struct {
	store store.EntityRepository

	mu          sync.Mutex
	generations map[entityKey]uint64
	reads       map[entityKey]map[uint64]context.CancelFunc
	nextReadID  uint64

	logger *logger.Logger
}

// NewOptimisticManager builds an optimistic update manager over the entity
// store.
func NewOptimisticManager(entities store.EntityRepository, logger *logger.Logger) OptimisticManager {
	return &optimisticManager{
		store:       entities,
		generations: make(map[entityKey]uint64),
		reads:       make(map[entityKey]map[uint64]context.CancelFunc),
		logger:      logger,
	}
}

func (o *optimisticManager) Mutate(ctx context.Context, m Mutation) (result models.StoredEntity, err error) {
	log := logger.FromContext(ctx)

	if m.Collection == "" || m.ID == "" || m.Apply == nil || m.Remote == nil {
		return models.StoredEntity{}, fmt.Errorf("%w: incomplete mutation", ErrInvalidDataProvided)
	}
	key := entityKey{collection: m.Collection, id: m.ID}

	o.beginMutation(key)

	current, found, err := o.store.Get(ctx, m.Collection, m.ID)
	if err != nil {
		return models.StoredEntity{}, fmt.Errorf("read %s/%s: %w", m.Collection, m.ID, err)
	}

	var snapshot *models.StoredEntity
	if found {
		var snap models.StoredEntity
		if err = deepcopy.Copy(&snap, &current); err != nil {
			log.Err(err).Str("func", "optimisticManager.Mutate").Msg("failed to snapshot entity")
			return models.StoredEntity{}, fmt.Errorf("snapshot %s/%s: %w", m.Collection, m.ID, err)
		}
		snapshot = &snap
	}

	var base *models.StoredEntity
	if found {
		base = &current
	}
	payload, err := m.Apply(base)
	if err != nil {
		return models.StoredEntity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	stored, err := o.store.Put(ctx, models.StoredEntity{
		Collection: m.Collection,
		ID:         m.ID,
		Payload:    payload,
		Metadata:   models.EntityMetadata{SyncStatus: models.SyncStatusPending},
	})
	if err != nil {
		return models.StoredEntity{}, fmt.Errorf("apply %s/%s locally: %w", m.Collection, m.ID, err)
	}

	// once the local write is in, the entity is re-read and the dependent
	// list caches are dropped whatever the outcome
	defer func() {
		if settled, ok := o.settle(ctx, m); ok && err == nil {
			result = settled
		}
		o.invalidate(ctx, m.Invalidates)
	}()

	value, remoteErr := m.Remote(ctx)
	if remoteErr != nil {
		log.Warn().Err(remoteErr).
			Str("func", "optimisticManager.Mutate").
			Str("collection", m.Collection).
			Str("id", m.ID).
			Msg("remote mutation failed, rolling back")
		o.rollback(ctx, key, snapshot)
		return models.StoredEntity{}, remoteErr
	}

	if len(value) > 0 {
		stored.Payload = value
		stored.Metadata.SyncStatus = models.SyncStatusSynced
		if stored, err = o.store.Put(ctx, stored); err != nil {
			log.Err(err).Str("func", "optimisticManager.Mutate").Msg("failed to store canonical value")
			return models.StoredEntity{}, fmt.Errorf("store canonical %s/%s: %w", m.Collection, m.ID, err)
		}
	} else {
		if err = o.store.SetSyncStatus(ctx, m.Collection, m.ID, models.SyncStatusSynced); err != nil {
			log.Err(err).Str("func", "optimisticManager.Mutate").Msg("failed to mark entity synced")
		}
		stored.Metadata.SyncStatus = models.SyncStatusSynced
	}

	return stored, nil
}

func (o *optimisticManager) invalidate(ctx context.Context, collections []string) {
	for _, collection := range collections {
		if _, err := o.store.DeleteCollection(ctx, collection); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "optimisticManager.invalidate").
				Str("collection", collection).
				Msg("failed to invalidate collection")
		}
	}
}

// beginMutation cancels reads of key issued before the mutation and makes
// their results stale.
func (o *optimisticManager) beginMutation(key entityKey) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generations[key]++
	for id, cancel := range o.reads[key] {
		cancel()
		delete(o.reads[key], id)
	}
}

func (o *optimisticManager) rollback(ctx context.Context, key entityKey, snapshot *models.StoredEntity) {
	var err error
	if snapshot == nil {
		err = o.store.Delete(ctx, key.collection, key.id)
	} else {
		err = o.store.Restore(ctx, *snapshot)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "optimisticManager.rollback").
			Str("collection", key.collection).
			Str("id", key.id).
			Msg("failed to roll back optimistic update")
	}
}

func (o *optimisticManager) settle(ctx context.Context, m Mutation) (models.StoredEntity, bool) {
	if m.Settle == nil {
		return models.StoredEntity{}, false
	}

	settled, err := o.Fetch(ctx, m.Collection, m.ID, m.Settle)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "optimisticManager.settle").
			Str("collection", m.Collection).
			Str("id", m.ID).
			Msg("failed to re-read entity after mutation")
		return models.StoredEntity{}, false
	}
	return settled, true
}

func (o *optimisticManager) Fetch(ctx context.Context, collection, id string, fetch FetchFunc) (models.StoredEntity, error) {
	key := entityKey{collection: collection, id: id}

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	generation, readID := o.registerRead(key, cancel)
	defer o.unregisterRead(key, readID)

	value, err := fetch(readCtx)
	if err != nil {
		if readCtx.Err() != nil && ctx.Err() == nil {
			return o.cached(ctx, collection, id)
		}
		return models.StoredEntity{}, fmt.Errorf("fetch %s/%s: %w", collection, id, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.generations[key] != generation || len(value) == 0 {
		return o.cached(ctx, collection, id)
	}

	current, found, err := o.store.Get(ctx, collection, id)
	if err != nil {
		return models.StoredEntity{}, fmt.Errorf("read %s/%s: %w", collection, id, err)
	}
	if found && sameJSON(current.Payload, value) {
		if current.Metadata.SyncStatus != models.SyncStatusSynced {
			if err = o.store.SetSyncStatus(ctx, collection, id, models.SyncStatusSynced); err != nil {
				return models.StoredEntity{}, err
			}
			current.Metadata.SyncStatus = models.SyncStatusSynced
		}
		return current, nil
	}

	return o.store.Put(ctx, models.StoredEntity{
		Collection: collection,
		ID:         id,
		Payload:    value,
		Metadata:   models.EntityMetadata{SyncStatus: models.SyncStatusSynced},
	})
}

func (o *optimisticManager) registerRead(key entityKey, cancel context.CancelFunc) (uint64, uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextReadID++
	if o.reads[key] == nil {
		o.reads[key] = make(map[uint64]context.CancelFunc)
	}
	o.reads[key][o.nextReadID] = cancel

	return o.generations[key], o.nextReadID
}

func (o *optimisticManager) unregisterRead(key entityKey, readID uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.reads[key], readID)
	if len(o.reads[key]) == 0 {
		delete(o.reads, key)
	}
}

func (o *optimisticManager) cached(ctx context.Context, collection, id string) (models.StoredEntity, error) {
	current, found, err := o.store.Get(ctx, collection, id)
	if err != nil {
		return models.StoredEntity{}, fmt.Errorf("read %s/%s: %w", collection, id, err)
	}
	if !found {
		return models.StoredEntity{}, ErrNotCached
	}
	return current, nil
}

func sameJSON(a, b json.RawMessage) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
