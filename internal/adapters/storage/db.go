package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
// *sql.DB satisfies this interface; tests may substitute wrappers.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode and foreign keys enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. Deleting a location detaches its seminars (SET NULL);
	// deleting a seminar removes its participants (CASCADE).
	schema := `
	CREATE TABLE IF NOT EXISTS location (
		location_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		street TEXT NOT NULL DEFAULT '',
		house_number TEXT NOT NULL DEFAULT '',
		zip_code INTEGER NOT NULL DEFAULT 0,
		city TEXT NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		maps_url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS seminar (
		seminar_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		image_name TEXT NOT NULL DEFAULT '',
		max_participants INTEGER NOT NULL DEFAULT 0,
		price REAL NOT NULL DEFAULT -1,
		location_id INTEGER,
		FOREIGN KEY (location_id) REFERENCES location(location_id)
			ON DELETE SET NULL ON UPDATE CASCADE
	);

	CREATE TABLE IF NOT EXISTS participant (
		participant_id INTEGER PRIMARY KEY AUTOINCREMENT,
		firstname TEXT NOT NULL,
		lastname TEXT NOT NULL,
		email TEXT NOT NULL,
		remarks TEXT NOT NULL DEFAULT '',
		token TEXT NOT NULL UNIQUE,
		seminar_id INTEGER NOT NULL,
		FOREIGN KEY (seminar_id) REFERENCES seminar(seminar_id)
			ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_seminar_date ON seminar(date, time);
	CREATE INDEX IF NOT EXISTS idx_participant_seminar ON participant(seminar_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
