package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/nuclea/internal/db"
)

// NewTestDB opens a migrated in-memory works/analyses store that lives for
// the duration of t.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
