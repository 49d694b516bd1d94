// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joestump/linkly/internal/db"
)

// NewTestDB opens an in-memory SQLite DB with the session schema applied.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// A shared-cache memory URI lets every pool connection see the same
	// database; the test name keeps databases apart across tests.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}
