// Package testutil holds shared helpers for package tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/bookhive/bookhive-go/internal/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database with the schema
// applied. The name keeps databases of parallel tests apart; the
// shared cache lets multiple connections see the same data.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := repository.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
