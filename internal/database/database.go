package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the path to the single shared database
func DBPath() string {
	return filepath.Join("data", "beach-terminal.db")
}

// Open opens the SQLite database at dbPath, creating its directory and the
// cache schema if needed. Use ":memory:" for a throwaway database.
func Open(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		// Set pragmas for performance
		_, _ = db.Exec("PRAGMA journal_mode=WAL")
		_, _ = db.Exec("PRAGMA synchronous=NORMAL")
		_, _ = db.Exec("PRAGMA busy_timeout=5000")
	}

	if err := EnsureCacheSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureCacheSchema ensures the cache_entries table exists.
func EnsureCacheSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			captured_at INTEGER NOT NULL,
			ttl_ns INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating cache_entries table: %w", err)
	}
	return nil
}
