// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the service and handler packages.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/store"
)

// TestDB creates a SQLite database in the test's temp directory with
// migrations applied. It is closed when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "ayyavu-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := store.Migrate(db, store.DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	return db
}

// SeededDB is TestDB plus the default admin and the sample projects.
func SeededDB(t *testing.T) *sql.DB {
	t.Helper()

	db := TestDB(t)

	if err := store.Seed(context.Background(), store.New(db)); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return db
}
