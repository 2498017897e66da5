// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification tells the caller what kind of failure a database error
// represents.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations and corrupt data.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient lock contention.
	Retryable

	// QuotaFull marks a write rejected because the database reached
	// max_page_count or the disk is full.
	QuotaFull
)

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ClassifySQLiteError(sqliteErr)
	}

	return NonRetryable
}

// ClassifySQLiteError maps a sqlite3.Error to an [ErrorClassification] by its
// primary result code.
//
//   - SQLITE_FULL: QuotaFull
//   - SQLITE_BUSY, SQLITE_LOCKED: Retryable
//
// Anything else is NonRetryable.
func ClassifySQLiteError(sqliteErr sqlite3.Error) ErrorClassification {
	switch sqliteErr.Code {
	case sqlite3.ErrFull:
		return QuotaFull
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}

	return NonRetryable
}

// writeError wraps a failed write into a [*StorageError], tagging quota
// failures with [ErrQuotaExceeded].
func (db *DB) writeError(op, collection, id string, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == QuotaFull {
		err = fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	}

	return &StorageError{Op: op, Collection: collection, ID: id, Err: err}
}
