// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncFailure describes a queued change that was dropped without reaching the
// server, either because it was rejected or because it ran out of retries.
type SyncFailure struct {
	Collection string    `json:"collection"`
	TargetID   string    `json:"target_id"`
	Reason     string    `json:"reason"`
	Exhausted  bool      `json:"exhausted"`
	At         time.Time `json:"at"`
}

// SyncState is the notification published to the UI layer after every change
// in connectivity, queue size or flush progress.
type SyncState struct {
	IsOnline           bool          `json:"is_online"`
	PendingChanges     int           `json:"pending_changes"`
	SyncInProgress     bool          `json:"sync_in_progress"`
	LastSyncAttempt    *time.Time    `json:"last_sync_attempt,omitempty"`
	LastSuccessfulSync *time.Time    `json:"last_successful_sync,omitempty"`
	Failures           []SyncFailure `json:"failures,omitempty"`
}

// FlushReport summarises one flush run.
type FlushReport struct {
	Attempted  int `json:"attempted"`
	Succeeded  int `json:"succeeded"`
	Retried    int `json:"retried"`
	Dropped    int `json:"dropped"`
	Superseded int `json:"superseded"`
}

// Clean reports whether the flush left nothing to retry.
func (r FlushReport) Clean() bool {
	return r.Retried == 0
}
