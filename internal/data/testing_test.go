//go:build integration

package data

import (
	"go-forum-app/internal/config"
	"testing"

	"github.com/jmoiron/sqlx"
)

// setupTestDB creates a new in-memory SQLite database with all migrations applied.
// The connection is closed when the test finishes.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// NewDB limits SQLite to one connection, so the in-memory database lives
	// for as long as the pool does.
	db, err := NewDB(config.DBConfig{Driver: "sqlite3", DSN: "file::memory:?_foreign_keys=on"})
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	if err := ApplyMigrations(db); err != nil {
		db.Close()
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
