// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncStatus describes how far a locally stored entity has progressed towards
// agreement with the remote source of truth.
type SyncStatus string

const (
	// SyncStatusPending marks an entity changed locally and not yet confirmed.
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusSyncing marks an entity whose pending change is being applied
	// remotely right now.
	SyncStatusSyncing SyncStatus = "syncing"
	// SyncStatusSynced marks an entity that matches the last server-confirmed value.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusError marks an entity whose pending change was rejected
	// permanently or ran out of retries.
	SyncStatusError SyncStatus = "error"
)

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case SyncStatusPending, SyncStatusSyncing, SyncStatusSynced, SyncStatusError:
		return true
	}
	return false
}

// EntityMetadata is the bookkeeping attached to every [StoredEntity].
type EntityMetadata struct {
	// GeneratedAt is the moment the entity was first written locally or first
	// pulled from the server.
	GeneratedAt time.Time `json:"generated_at"`

	// LastModified is updated on every upsert and drives age-based eviction.
	LastModified time.Time `json:"last_modified"`

	// SyncStatus is the current position in the pending → syncing → synced
	// lifecycle.
	SyncStatus SyncStatus `json:"sync_status"`

	// DeviceID identifies the device that produced the last local write.
	// It is informational only: no cross-device merge is attempted.
	DeviceID string `json:"device_id"`

	// Version increases by one on each successful local upsert.
	Version int64 `json:"version"`

	// Hash is a hex blake2b-256 digest of the uncompressed payload.
	Hash string `json:"hash"`

	// Compressed is true when the payload is stored zstd-compressed on disk.
	Compressed bool `json:"compressed"`
}

// StoredEntity is a versioned, cacheable domain object kept in the local store
// (a shopping list, a cached household size, a cached serving override, a
// recipe). The payload is opaque to the store.
type StoredEntity struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	Metadata   EntityMetadata  `json:"metadata"`
}

// Decode unmarshals the entity payload into v.
func (e StoredEntity) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}
