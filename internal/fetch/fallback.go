package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/cache"
)

// Fallback serves fresh cache hits, refetches expired ones, and falls back
// to whatever is cached when the upstream fails.
type Fallback struct {
	Store  cache.Store
	Logger *slog.Logger
	Now    func() time.Time
}

// Request describes one cached upstream call
type Request[T any] struct {
	Key   string
	TTL   time.Duration
	Force bool // skip a fresh cache hit and always try upstream
	Fetch func(ctx context.Context) (T, error)
}

// Result is a value plus where it came from. Age is zero for live data.
type Result[T any] struct {
	Value  T
	Age    time.Duration
	Cached bool
	Stale  bool // served from an expired entry or after an upstream failure
}

// Load runs the request against the fallback's cache
func Load[T any](ctx context.Context, f *Fallback, req Request[T]) (Result[T], error) {
	now := time.Now
	if f != nil && f.Now != nil {
		now = f.Now
	}
	if f == nil || f.Store == nil {
		v, err := req.Fetch(ctx)
		return Result[T]{Value: v}, err
	}
	log := f.Logger
	if log == nil {
		log = slog.Default()
	}

	if !req.Force {
		v, entry, ok, err := cache.ReadJSON[T](ctx, f.Store, req.Key)
		if err != nil {
			log.Warn("cache read failed", "key", req.Key, "error", err)
		}
		if ok && !entry.IsExpired(now()) {
			return Result[T]{Value: v, Age: entry.Age(now()), Cached: true}, nil
		}
	}

	v, fetchErr := req.Fetch(ctx)
	if fetchErr == nil {
		if err := cache.WriteJSON(ctx, f.Store, req.Key, v, req.TTL); err != nil {
			log.Warn("cache write failed", "key", req.Key, "error", err)
		}
		return Result[T]{Value: v}, nil
	}

	cached, entry, ok, err := cache.ReadJSON[T](ctx, f.Store, req.Key)
	if err != nil {
		log.Warn("cache read failed", "key", req.Key, "error", err)
	}
	if !ok {
		return Result[T]{}, fetchErr
	}
	log.Info("serving cached data after upstream failure",
		"key", req.Key, "age", entry.Age(now()).Round(time.Second), "error", fetchErr)
	return Result[T]{Value: cached, Age: entry.Age(now()), Cached: true, Stale: true}, nil
}
