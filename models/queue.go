// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// DefaultMaxRetries is the number of recoverable failures after which a queued
// change is dropped.
const DefaultMaxRetries = 3

// ChangeType is the kind of mutation a queue entry describes.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// SyncQueueEntry is a durable pending change: "what the user wants this key to
// become". There is at most one entry per (Collection, TargetID).
type SyncQueueEntry struct {
	// ID is a UUIDv7 assigned on first enqueue and kept across coalescing.
	ID string `json:"id"`

	// Seq orders entries in arrival order across all keys. It is refreshed
	// whenever the entry is replaced, so a replaced entry also acts as a
	// version stamp for compare-and-remove.
	Seq int64 `json:"seq"`

	Collection string     `json:"collection"`
	TargetID   string     `json:"target_id"`
	Type       ChangeType `json:"type"`

	// Payload is the desired value. A nil payload means "remove/reset".
	Payload json.RawMessage `json:"payload,omitempty"`

	Timestamp  time.Time `json:"timestamp"`
	RetryCount int       `json:"retry_count"`
	MaxRetries int       `json:"max_retries"`

	// Attempted is set once the entry has been handed to the server. The
	// server may hold the change even if no reply arrived.
	Attempted bool `json:"attempted"`
}

// Exhausted reports whether the entry has used up all of its retries.
func (e SyncQueueEntry) Exhausted() bool {
	return e.RetryCount >= e.MaxRetries
}
