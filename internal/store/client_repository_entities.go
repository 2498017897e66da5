// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func (l *localStore) Put(ctx context.Context, e models.StoredEntity) (models.StoredEntity, error) {
	stored, _, err := l.upsert(ctx, e, "")
	return stored, err
}

// upsert writes e. A non-empty expectHash makes the write conditional: it
// happens only while the stored payload still has that hash, and written
// reports whether it did.
func (l *localStore) upsert(ctx context.Context, e models.StoredEntity, expectHash string) (stored models.StoredEntity, written bool, err error) {
	log := logger.FromContext(ctx)

	if e.Collection == "" || e.ID == "" {
		return models.StoredEntity{}, false, &StorageError{Op: "put", Collection: e.Collection, ID: e.ID, Err: ErrInvalidEntity}
	}

	if e.Metadata.DeviceID == "" {
		deviceID, err := l.DeviceID(ctx)
		if err != nil {
			return models.StoredEntity{}, false, l.writeError("put", e.Collection, e.ID, err)
		}
		e.Metadata.DeviceID = deviceID
	}
	if e.Metadata.SyncStatus == "" {
		e.Metadata.SyncStatus = models.SyncStatusPending
	}

	raw := []byte(e.Payload)
	data, compressed := l.codec.Encode(raw)

	now := l.now()
	e.Metadata.LastModified = now
	e.Metadata.Hash = PayloadHash(raw)
	e.Metadata.Compressed = compressed

	l.mu.Lock()
	defer l.mu.Unlock()

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		var (
			version     int64
			generatedAt time.Time
			hash        string
		)
		err := tx.QueryRowContext(ctx, getEntityMeta, e.Collection, e.ID).Scan(&version, &generatedAt, &hash)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if expectHash != "" {
				return errHashChanged
			}
			e.Metadata.Version = 1
			if e.Metadata.GeneratedAt.IsZero() {
				e.Metadata.GeneratedAt = now
			}
		case err != nil:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		default:
			if expectHash != "" && hash != expectHash {
				return errHashChanged
			}
			e.Metadata.Version = version + 1
			e.Metadata.GeneratedAt = generatedAt.UTC()
		}

		_, err = tx.ExecContext(ctx, replaceEntity,
			e.Collection,
			e.ID,
			data,
			len(data),
			e.Metadata.GeneratedAt.UTC(),
			e.Metadata.LastModified,
			string(e.Metadata.SyncStatus),
			e.Metadata.DeviceID,
			e.Metadata.Version,
			e.Metadata.Hash,
			e.Metadata.Compressed,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if errors.Is(err, errHashChanged) {
		return models.StoredEntity{}, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "localStore.Put").
			Str("collection", e.Collection).
			Str("id", e.ID).
			Msg("failed to upsert entity")
		return models.StoredEntity{}, false, l.writeError("put", e.Collection, e.ID, err)
	}

	return e, true, nil
}

func (l *localStore) ConfirmSynced(ctx context.Context, collection, id, sentHash string, serverValue json.RawMessage) (bool, error) {
	if len(serverValue) > 0 && PayloadHash(serverValue) != sentHash {
		_, written, err := l.upsert(ctx, models.StoredEntity{
			Collection: collection,
			ID:         id,
			Payload:    serverValue,
			Metadata:   models.EntityMetadata{SyncStatus: models.SyncStatusSynced},
		}, sentHash)
		return written, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.ExecContext(ctx, confirmEntitySynced, string(models.SyncStatusSynced), collection, id, sentHash)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.ConfirmSynced").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to confirm synced entity")
		return false, l.writeError("confirm", collection, id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (l *localStore) Get(ctx context.Context, collection, id string) (models.StoredEntity, bool, error) {
	log := logger.FromContext(ctx)

	e, err := l.scanEntity(l.QueryRowContext(ctx, getEntity, collection, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredEntity{}, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "localStore.Get").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to read entity")
		return models.StoredEntity{}, false, fmt.Errorf("failed to read entity %s/%s: %w", collection, id, err)
	}

	return e, true, nil
}

func (l *localStore) GetAll(ctx context.Context, collection string) ([]models.StoredEntity, error) {
	log := logger.FromContext(ctx)

	rows, err := l.QueryContext(ctx, getAllEntities, collection)
	if err != nil {
		log.Err(err).
			Str("func", "localStore.GetAll").
			Str("collection", collection).
			Msg("failed to query entities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entities []models.StoredEntity
	for rows.Next() {
		e, scanErr := l.scanEntity(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localStore.GetAll").
				Str("collection", collection).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entities = append(entities, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entities, nil
}

func (l *localStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := l.ExecContext(ctx, deleteEntity, collection, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Delete").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to delete entity")
		return l.writeError("delete", collection, id, err)
	}
	return nil
}

func (l *localStore) DeleteCollection(ctx context.Context, collection string) (int64, error) {
	res, err := l.ExecContext(ctx, deleteCollection, collection)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.DeleteCollection").
			Str("collection", collection).
			Msg("failed to delete collection")
		return 0, l.writeError("delete", collection, "", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (l *localStore) Restore(ctx context.Context, e models.StoredEntity) error {
	raw := []byte(e.Payload)
	data := raw
	if e.Metadata.Compressed {
		var ok bool
		data, ok = l.codec.Compress(raw)
		e.Metadata.Compressed = ok
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.ExecContext(ctx, replaceEntity,
		e.Collection,
		e.ID,
		data,
		len(data),
		e.Metadata.GeneratedAt.UTC(),
		e.Metadata.LastModified.UTC(),
		string(e.Metadata.SyncStatus),
		e.Metadata.DeviceID,
		e.Metadata.Version,
		e.Metadata.Hash,
		e.Metadata.Compressed,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Restore").
			Str("collection", e.Collection).
			Str("id", e.ID).
			Msg("failed to restore entity snapshot")
		return l.writeError("restore", e.Collection, e.ID, err)
	}

	return nil
}

func (l *localStore) SetSyncStatus(ctx context.Context, collection, id string, status models.SyncStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown sync status %q", status)
	}
	if _, err := l.ExecContext(ctx, setEntitySyncStatus, string(status), collection, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.SetSyncStatus").
			Str("collection", collection).
			Str("id", id).
			Str("status", string(status)).
			Msg("failed to update sync status")
		return l.writeError("set status", collection, id, err)
	}
	return nil
}

func (l *localStore) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{clearEntities, clearQueue} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		if _, err := tx.ExecContext(ctx, clearSyncBook, KeyLastSyncAttempt, KeyLastSuccessfulSync); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localStore.Clear").Msg("failed to clear local store")
		return l.writeError("clear", "", "", err)
	}

	return nil
}

func (l *localStore) scanEntity(row rowScanner) (models.StoredEntity, error) {
	var (
		e      models.StoredEntity
		data   []byte
		status string
	)

	err := row.Scan(
		&e.Collection,
		&e.ID,
		&data,
		&e.Metadata.GeneratedAt,
		&e.Metadata.LastModified,
		&status,
		&e.Metadata.DeviceID,
		&e.Metadata.Version,
		&e.Metadata.Hash,
		&e.Metadata.Compressed,
	)
	if err != nil {
		return models.StoredEntity{}, err
	}

	raw, err := l.codec.Decode(data, e.Metadata.Compressed)
	if err != nil {
		return models.StoredEntity{}, err
	}

	e.Payload = raw
	e.Metadata.SyncStatus = models.SyncStatus(status)
	e.Metadata.GeneratedAt = e.Metadata.GeneratedAt.UTC()
	e.Metadata.LastModified = e.Metadata.LastModified.UTC()

	return e, nil
}
