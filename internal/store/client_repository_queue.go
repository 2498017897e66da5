// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/models"
)

func (l *localStore) UpsertQueueEntry(ctx context.Context, collection, targetID string, merge QueueMerge) (*models.SyncQueueEntry, error) {
	log := logger.FromContext(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	var result *models.SyncQueueEntry
	err := l.withTx(ctx, func(tx *sql.Tx) error {
		var existing *models.SyncQueueEntry

		current, err := scanQueueEntry(tx.QueryRowContext(ctx, getQueueEntry, collection, targetID))
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			existing = &current
		}

		next := merge(existing)
		if next == nil {
			if existing != nil {
				if _, err = tx.ExecContext(ctx, deleteQueueSlot, collection, targetID); err != nil {
					return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
				}
			}
			return nil
		}

		var seq int64
		if err = tx.QueryRowContext(ctx, nextQueueSeq).Scan(&seq); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		entry := *next
		entry.Seq = seq
		entry.Collection = collection
		entry.TargetID = targetID
		entry.Timestamp = entry.Timestamp.UTC()
		if entry.MaxRetries <= 0 {
			entry.MaxRetries = models.DefaultMaxRetries
		}

		// the slot may carry a different id when merge replaced the entry
		if _, err = tx.ExecContext(ctx, deleteQueueSlot, collection, targetID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		_, err = tx.ExecContext(ctx, replaceQueueEntry,
			entry.ID,
			entry.Seq,
			entry.Collection,
			entry.TargetID,
			string(entry.Type),
			nullablePayload(entry.Payload),
			entry.Timestamp,
			entry.RetryCount,
			entry.MaxRetries,
			entry.Attempted,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		result = &entry
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localStore.UpsertQueueEntry").
			Str("collection", collection).
			Str("target_id", targetID).
			Msg("failed to write queue entry")
		return nil, l.writeError("enqueue", collection, targetID, err)
	}

	return result, nil
}

func (l *localStore) ListQueue(ctx context.Context) ([]models.SyncQueueEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := l.QueryContext(ctx, listQueue)
	if err != nil {
		log.Err(err).Str("func", "localStore.ListQueue").Msg("failed to query sync queue")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.SyncQueueEntry
	for rows.Next() {
		entry, scanErr := scanQueueEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "localStore.ListQueue").Msg("failed to scan queue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (l *localStore) GetQueueEntry(ctx context.Context, collection, targetID string) (models.SyncQueueEntry, bool, error) {
	entry, err := scanQueueEntry(l.QueryRowContext(ctx, getQueueEntry, collection, targetID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncQueueEntry{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.GetQueueEntry").
			Str("collection", collection).
			Str("target_id", targetID).
			Msg("failed to read queue entry")
		return models.SyncQueueEntry{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return entry, true, nil
}

func (l *localStore) RemoveQueueEntry(ctx context.Context, id string, seq int64) (bool, error) {
	res, err := l.ExecContext(ctx, removeQueueEntry, id, seq)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.RemoveQueueEntry").
			Str("entry_id", id).
			Int64("seq", seq).
			Msg("failed to remove queue entry")
		return false, l.writeError("dequeue", "", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (l *localStore) IncrementRetry(ctx context.Context, id string, seq int64) (int, bool, error) {
	var retryCount int
	err := l.QueryRowContext(ctx, incrementRetry, id, seq).Scan(&retryCount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.IncrementRetry").
			Str("entry_id", id).
			Int64("seq", seq).
			Msg("failed to increment retry count")
		return 0, false, l.writeError("retry", "", id, err)
	}
	return retryCount, true, nil
}

func (l *localStore) MarkQueueEntryAttempted(ctx context.Context, id string, seq int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.ExecContext(ctx, markQueueEntryAttempted, id, seq)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.MarkQueueEntryAttempted").
			Str("entry_id", id).
			Int64("seq", seq).
			Msg("failed to mark queue entry attempted")
		return false, l.writeError("mark attempted", "", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (l *localStore) CountQueue(ctx context.Context) (int, error) {
	var n int
	if err := l.QueryRowContext(ctx, countQueue).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (l *localStore) CountQueueByCollection(ctx context.Context, collection string) (int, error) {
	var n int
	if err := l.QueryRowContext(ctx, countQueueByCollection, collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func scanQueueEntry(row rowScanner) (models.SyncQueueEntry, error) {
	var (
		entry      models.SyncQueueEntry
		changeType string
		payload    []byte
	)

	err := row.Scan(
		&entry.ID,
		&entry.Seq,
		&entry.Collection,
		&entry.TargetID,
		&changeType,
		&payload,
		&entry.Timestamp,
		&entry.RetryCount,
		&entry.MaxRetries,
		&entry.Attempted,
	)
	if err != nil {
		return models.SyncQueueEntry{}, err
	}

	entry.Type = models.ChangeType(changeType)
	entry.Timestamp = entry.Timestamp.UTC()
	if payload != nil {
		entry.Payload = payload
	}

	return entry, nil
}

// nullablePayload stores a reset (nil payload) as SQL NULL.
func nullablePayload(p []byte) any {
	if p == nil {
		return nil
	}
	return p
}
