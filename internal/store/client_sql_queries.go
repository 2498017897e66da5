// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-meal-planner/models"
)

const (
	entityColumns = `collection, id, payload, generated_at, last_modified, sync_status, device_id, version, hash, compressed`

	getEntityMeta = `
		SELECT version, generated_at, hash
		FROM entities
		WHERE collection = ? AND id = ?;`

	replaceEntity = `
		INSERT OR REPLACE INTO entities (
			collection,
			id,
			payload,
			size,
			generated_at,
			last_modified,
			sync_status,
			device_id,
			version,
			hash,
			compressed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getEntity = `
		SELECT ` + entityColumns + `
		FROM entities
		WHERE collection = ? AND id = ?;`

	getAllEntities = `
		SELECT ` + entityColumns + `
		FROM entities
		WHERE collection = ?
		ORDER BY id;`

	deleteEntity = `
		DELETE FROM entities
		WHERE collection = ? AND id = ?;`

	deleteCollection = `
		DELETE FROM entities
		WHERE collection = ?;`

	setEntitySyncStatus = `
		UPDATE entities
		SET sync_status = ?
		WHERE collection = ? AND id = ?;`

	confirmEntitySynced = `
		UPDATE entities
		SET sync_status = ?
		WHERE collection = ? AND id = ? AND hash = ?;`

	getEntityPayload = `
		SELECT payload, compressed
		FROM entities
		WHERE collection = ? AND id = ?;`

	setEntityPayloadCompressed = `
		UPDATE entities
		SET payload = ?, size = ?, compressed = TRUE
		WHERE collection = ? AND id = ?;`

	clearEntities = `DELETE FROM entities;`
	clearQueue    = `DELETE FROM sync_queue;`
	clearSyncBook = `DELETE FROM bookkeeping WHERE key IN (?, ?);`

	queueColumns = `id, seq, collection, target_id, type, payload, timestamp, retry_count, max_retries, attempted`

	getQueueEntry = `
		SELECT ` + queueColumns + `
		FROM sync_queue
		WHERE collection = ? AND target_id = ?;`

	listQueue = `
		SELECT ` + queueColumns + `
		FROM sync_queue
		ORDER BY seq;`

	replaceQueueEntry = `
		INSERT OR REPLACE INTO sync_queue (` + queueColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	deleteQueueSlot = `
		DELETE FROM sync_queue
		WHERE collection = ? AND target_id = ?;`

	removeQueueEntry = `
		DELETE FROM sync_queue
		WHERE id = ? AND seq = ?;`

	incrementRetry = `
		UPDATE sync_queue
		SET retry_count = retry_count + 1
		WHERE id = ? AND seq = ?
		RETURNING retry_count;`

	markQueueEntryAttempted = `
		UPDATE sync_queue
		SET attempted = TRUE
		WHERE id = ? AND seq = ?;`

	countQueue = `SELECT COUNT(*) FROM sync_queue;`

	countQueueByCollection = `SELECT COUNT(*) FROM sync_queue WHERE collection = ?;`

	getBookkeeping = `SELECT value FROM bookkeeping WHERE key = ?;`

	setBookkeeping = `
		INSERT INTO bookkeeping (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	insertBookkeepingIfMissing = `INSERT OR IGNORE INTO bookkeeping (key, value) VALUES (?, ?);`

	nextQueueSeq = `
		INSERT INTO bookkeeping (key, value) VALUES ('queue_seq', '1')
		ON CONFLICT (key) DO UPDATE SET value = CAST(value AS INTEGER) + 1
		RETURNING CAST(value AS INTEGER);`

	storeFootprint = `
		SELECT (page_count - freelist_count) * page_size
		FROM pragma_page_count(), pragma_freelist_count(), pragma_page_size();`

	schemaReady = `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('entities', 'sync_queue', 'bookkeeping');`
)

// Bookkeeping keys.
const (
	KeyLastSyncAttempt    = "last_sync_attempt"
	KeyLastSuccessfulSync = "last_successful_sync"
	KeyDeviceID           = "device_id"
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// buildDeleteSyncedOlderThanQuery builds the eviction query for one
// collection. An empty collection matches every collection.
func buildDeleteSyncedOlderThanQuery(collection string, cutoff time.Time) (string, []any, error) {
	q := sqlite.Delete("entities").
		Where(sq.Eq{"sync_status": string(models.SyncStatusSynced)}).
		Where(sq.Lt{"last_modified": cutoff.UTC()})

	if collection != "" {
		q = q.Where(sq.Eq{"collection": collection})
	}

	return q.ToSql()
}

// buildListUncompressedLargerQuery selects entities whose stored payload is
// larger than threshold and not compressed yet, biggest first.
func buildListUncompressedLargerQuery(threshold int) (string, []any, error) {
	return sqlite.Select("collection", "id", "size").
		From("entities").
		Where(sq.Eq{"compressed": false}).
		Where(sq.Gt{"size": threshold}).
		OrderBy("size DESC").
		ToSql()
}
