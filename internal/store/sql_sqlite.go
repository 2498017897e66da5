// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

// NewConnectSQLite opens the local SQLite database described by cfg. When a
// byte quota is configured the database is capped with max_page_count, so a
// write that would exceed it fails with SQLITE_FULL.
func NewConnectSQLite(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*DB, error) {
	if !isMemoryDSN(cfg.DSN) {
		// db will be in file
		if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// one writer; also keeps an in-memory database alive between calls
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, err
	}

	db := &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
		path:               dbFilePath(cfg.DSN),
	}

	if cfg.QuotaBytes > 0 {
		if err = db.limitPages(ctx, cfg.QuotaBytes); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error applying storage quota")
			_ = conn.Close()
			return nil, err
		}
	}

	log.Debug().Str("func", "NewConnectSQLite").Str("path", db.path).Msg("connected to database successfully")

	return db, nil
}

// limitPages caps the database at quotaBytes.
func (db *DB) limitPages(ctx context.Context, quotaBytes int64) error {
	var pageSize int64
	if err := db.QueryRowContext(ctx, "PRAGMA page_size;").Scan(&pageSize); err != nil {
		return fmt.Errorf("error reading page size: %w", err)
	}
	if pageSize <= 0 {
		return fmt.Errorf("unexpected page size %d", pageSize)
	}

	pages := quotaBytes / pageSize
	if pages < 1 {
		pages = 1
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA max_page_count = %d;", pages)); err != nil {
		return fmt.Errorf("error setting max page count: %w", err)
	}

	return nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// dbFilePath strips the "file:" scheme and query options from a DSN.
func dbFilePath(dsn string) string {
	if isMemoryDSN(dsn) {
		return ""
	}
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

func createLocalDBFileIfNotExists(dsn string) error {
	dbFile := dbFilePath(dsn)
	if dbFile == "" {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if dir := filepath.Dir(dbFile); dir != "." {
			if err = os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating DB directory: %w", err)
			}
		}
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
