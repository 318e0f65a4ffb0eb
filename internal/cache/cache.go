// Package cache is a passive key/value store with capture time and TTL
// metadata. It never fetches or retries; callers decide what to do with
// stale entries.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Entry is a cached payload with its capture metadata. Staleness is derived
// from the capture time, never stored.
type Entry struct {
	Payload    []byte        `json:"payload"`
	CapturedAt time.Time     `json:"captured_at"`
	TTL        time.Duration `json:"ttl"`
}

// Age returns how long ago the entry was captured
func (e Entry) Age(now time.Time) time.Duration {
	if now.Before(e.CapturedAt) {
		return 0
	}
	return now.Sub(e.CapturedAt)
}

// IsExpired reports whether the entry has outlived its TTL
func (e Entry) IsExpired(now time.Time) bool {
	return now.Sub(e.CapturedAt) > e.TTL
}

// Store persists entries by key. A miss is reported as ok=false with a nil
// error.
type Store interface {
	Write(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Read(ctx context.Context, key string) (Entry, bool, error)
}

// Key builds the cache key for a data source and location
func Key(source, location string) string {
	return source + ":" + location
}

// WriteJSON encodes v and stores it under key
func WriteJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	return s.Write(ctx, key, payload, ttl)
}

// ReadJSON loads and decodes the entry under key
func ReadJSON[T any](ctx context.Context, s Store, key string) (T, Entry, bool, error) {
	var v T
	entry, ok, err := s.Read(ctx, key)
	if err != nil || !ok {
		return v, entry, ok, err
	}
	if err := json.Unmarshal(entry.Payload, &v); err != nil {
		return v, entry, false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	return v, entry, true, nil
}
