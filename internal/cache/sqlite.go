package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/database"
)

// SQLiteStore keeps entries in the cache_entries table
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore wraps an open database, creating the schema if needed
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if err := database.EnsureCacheSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// WithClock replaces the clock used to stamp captured_at
func (s *SQLiteStore) WithClock(now func() time.Time) *SQLiteStore {
	s.now = now
	return s
}

// Write stores payload under key, replacing any previous entry
func (s *SQLiteStore) Write(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	query := `
		INSERT INTO cache_entries (key, payload, captured_at, ttl_ns)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			captured_at = excluded.captured_at,
			ttl_ns = excluded.ttl_ns
	`
	if payload == nil {
		payload = []byte{}
	}
	_, err := s.db.ExecContext(ctx, query, key, payload, s.now().UnixNano(), int64(ttl))
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// Read returns the entry under key, expired or not
func (s *SQLiteStore) Read(ctx context.Context, key string) (Entry, bool, error) {
	var (
		payload    []byte
		capturedAt int64
		ttl        int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT payload, captured_at, ttl_ns FROM cache_entries WHERE key = ?",
		key,
	).Scan(&payload, &capturedAt, &ttl)

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}

	return Entry{
		Payload:    payload,
		CapturedAt: time.Unix(0, capturedAt),
		TTL:        time.Duration(ttl),
	}, true, nil
}
