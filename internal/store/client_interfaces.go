// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-meal-planner/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// EntityRepository keeps versioned domain objects keyed by (collection, id).
type EntityRepository interface {
	// Put upserts e, bumping its version and recomputing hash and
	// last-modified time. The stored entity is returned.
	Put(ctx context.Context, e models.StoredEntity) (models.StoredEntity, error)
	// Get returns found=false for a missing entity; that is not an error.
	Get(ctx context.Context, collection, id string) (models.StoredEntity, bool, error)
	GetAll(ctx context.Context, collection string) ([]models.StoredEntity, error)
	// Delete is idempotent.
	Delete(ctx context.Context, collection, id string) error
	DeleteCollection(ctx context.Context, collection string) (int64, error)
	// Restore writes e exactly as given, metadata included.
	Restore(ctx context.Context, e models.StoredEntity) error
	SetSyncStatus(ctx context.Context, collection, id string, status models.SyncStatus) error
	// ConfirmSynced marks the entity synced, storing serverValue when it is
	// non-empty and differs from what was sent. Nothing changes unless the
	// stored payload still hashes to sentHash; confirmed reports whether it did.
	ConfirmSynced(ctx context.Context, collection, id, sentHash string, serverValue json.RawMessage) (confirmed bool, err error)
	// Clear removes every entity and queued change. The device ID survives.
	Clear(ctx context.Context) error
}

// QueueMerge decides what a queue slot becomes. existing is nil when the key
// has no entry. Returning nil removes the entry.
type QueueMerge func(existing *models.SyncQueueEntry) *models.SyncQueueEntry

// QueueRepository stores at most one pending change per (collection, target).
type QueueRepository interface {
	// UpsertQueueEntry atomically reads the slot of (collection, targetID),
	// applies merge and writes the result with a fresh sequence number.
	UpsertQueueEntry(ctx context.Context, collection, targetID string, merge QueueMerge) (*models.SyncQueueEntry, error)
	// ListQueue returns all entries in arrival order.
	ListQueue(ctx context.Context) ([]models.SyncQueueEntry, error)
	GetQueueEntry(ctx context.Context, collection, targetID string) (models.SyncQueueEntry, bool, error)
	// RemoveQueueEntry removes the entry only if it still has the given seq.
	RemoveQueueEntry(ctx context.Context, id string, seq int64) (bool, error)
	// IncrementRetry bumps the retry counter only if the entry still has the
	// given seq, and returns the new count.
	IncrementRetry(ctx context.Context, id string, seq int64) (int, bool, error)
	// MarkQueueEntryAttempted flags the entry as sent only if it still has
	// the given seq. It returns false when the entry was replaced or removed.
	MarkQueueEntryAttempted(ctx context.Context, id string, seq int64) (bool, error)
	CountQueue(ctx context.Context) (int, error)
	CountQueueByCollection(ctx context.Context, collection string) (int, error)
}

// BookkeepingRepository keeps small key/value facts about the store.
type BookkeepingRepository interface {
	GetBookkeeping(ctx context.Context, key string) (string, bool, error)
	SetBookkeeping(ctx context.Context, key, value string) error
	GetTime(ctx context.Context, key string) (*time.Time, error)
	SetTime(ctx context.Context, key string, t time.Time) error
	// DeviceID returns the identifier of this device, creating it once.
	DeviceID(ctx context.Context) (string, error)
}

// EntityRef points at a stored entity.
type EntityRef struct {
	Collection string
	ID         string
	Size       int64
}

// UsageRepository reports footprint and supports eviction.
type UsageRepository interface {
	// EstimateUsage returns {0,0,0} when no quota source is configured.
	EstimateUsage(ctx context.Context) (models.StorageUsage, error)
	// Initialized returns an error when the schema is missing or the
	// database cannot be reached.
	Initialized(ctx context.Context) error
	DeleteSyncedOlderThan(ctx context.Context, collection string, cutoff time.Time) (int64, error)
	ListUncompressedLarger(ctx context.Context, threshold int) ([]EntityRef, error)
	// Compress stores the payload of an entity compressed without touching
	// its version. It reports whether anything changed.
	Compress(ctx context.Context, collection, id string) (bool, error)
	// Vacuum gives freed pages back to the file system.
	Vacuum(ctx context.Context) error
}

// LocalStore is the whole local persistence surface used by the services.
type LocalStore interface {
	EntityRepository
	QueueRepository
	BookkeepingRepository
	UsageRepository
}

// QuotaSource reports how many bytes the store may occupy in total. used is
// the current footprint of the store.
type QuotaSource interface {
	Available(ctx context.Context, used int64) (int64, error)
}
