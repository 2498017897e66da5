// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the local store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrQuotaExceeded is returned (wrapped in a [*StorageError]) when SQLite
	// refuses a write because the database reached its page limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnsupportedCodecVersion is returned when a compressed payload
	// carries a version tag this build does not know how to decode.
	ErrUnsupportedCodecVersion = errors.New("unsupported codec version")

	// ErrStoreNotInitialized is returned when the schema has not been
	// migrated or the database handle is gone.
	ErrStoreNotInitialized = errors.New("local store is not initialized")

	// ErrInvalidEntity is returned when an entity lacks a collection or ID.
	ErrInvalidEntity = errors.New("entity must have a collection and an id")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a dynamic query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// errHashChanged aborts a conditional write whose entity changed meanwhile.
var errHashChanged = errors.New("stored payload changed")

// StorageError describes a failed write to the local store. The quota
// governor reacts to it by running cleanup and retrying.
type StorageError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *StorageError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("storage %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	if e.Collection != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a [*StorageError].
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsQuotaExceeded reports whether err was caused by the store running out of
// space.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}
