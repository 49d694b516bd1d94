package migrations

// The sessions table is the only table Linkly owns. It backs the SCS session
// that carries the theme preference; link lists are never written here.
// Column types follow what each scs store adapter expects.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSessions, downCreateSessions)
}

func sessionsDDL(d string) string {
	switch d {
	case "postgres":
		return `CREATE TABLE IF NOT EXISTS sessions (
    token  TEXT PRIMARY KEY,
    data   BYTEA NOT NULL,
    expiry TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		return `CREATE TABLE IF NOT EXISTS sessions (
    token  CHAR(43) PRIMARY KEY,
    data   BLOB NOT NULL,
    expiry TIMESTAMP(6) NOT NULL
)`
	default: // sqlite3
		return `CREATE TABLE IF NOT EXISTS sessions (
    token  TEXT PRIMARY KEY,
    data   BLOB NOT NULL,
    expiry REAL NOT NULL
)`
	}
}

func upCreateSessions(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, sessionsDDL(dialect)); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	idx := `CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`
	if dialect == "mysql" {
		// MySQL has no IF NOT EXISTS for indexes; the table is new here anyway.
		idx = `CREATE INDEX sessions_expiry_idx ON sessions (expiry)`
	}
	if _, err := tx.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("create sessions expiry index: %w", err)
	}
	return nil
}

func downCreateSessions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS sessions`)
	return err
}
