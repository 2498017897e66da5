// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the DB on its own; no expectations means every call fails

	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	if err := Migrate(db); err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}
}

func TestMigrate_CreatesTables(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err = Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run must be a no-op
	if err = Migrate(db); err != nil {
		t.Fatalf("migrate twice: %v", err)
	}

	for _, table := range []string{"entities", "sync_queue", "bookkeeping"} {
		var name string
		row := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		if err = row.Scan(&name); err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
	var attempted int
	row := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('sync_queue') WHERE name = 'attempted'`)
	if err = row.Scan(&attempted); err != nil || attempted != 1 {
		t.Errorf("sync_queue.attempted missing: count=%d err=%v", attempted, err)
	}
}
