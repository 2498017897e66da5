// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrOffline is returned by a flush request while the network monitor
	// reports no connectivity. Nothing was attempted.
	ErrOffline = errors.New("offline: sync postponed")

	// ErrSyncInProgress is returned when a flush is already running.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrSyncExhausted marks a queued change dropped after using up its
	// retries. It is recorded in the sync failures, never returned to a
	// caller that did not ask for a flush.
	ErrSyncExhausted = errors.New("sync retries exhausted")

	// ErrSyncRejected marks a queued change the server refused permanently.
	ErrSyncRejected = errors.New("sync rejected by server")

	// ErrStorageFull is returned when a local write still fails after the
	// whole cleanup ladder ran.
	ErrStorageFull = errors.New("local storage is full")

	// ErrInvalidDataProvided is returned for inputs the services refuse
	// before touching storage.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrNotCached is returned when a read finds nothing locally and there
	// is no way to fetch it.
	ErrNotCached = errors.New("value is not cached")
)
