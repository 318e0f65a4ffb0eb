// Package conditions gathers weather, water quality and tides for each
// beach and merges them into hourly scoring snapshots.
package conditions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ngmaloney/beach-terminal/internal/cache"
	"github.com/ngmaloney/beach-terminal/internal/crowd"
	"github.com/ngmaloney/beach-terminal/internal/fetch"
	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/tides"
)

// WeatherSource returns the forecast for a coordinate
type WeatherSource interface {
	GetForecast(ctx context.Context, lat, lon float64) (*models.Weather, error)
}

// WaterSource returns the latest water quality sample for a beach
type WaterSource interface {
	GetWaterQuality(ctx context.Context, beachName string) (*models.WaterQuality, error)
}

// Source names a single upstream feed
type Source string

const (
	SourceWeather      Source = "weather"
	SourceWaterQuality Source = "water"
	SourceTides        Source = "tides"
)

// errStaleRefresh reports a forced refresh that could only serve the cache.
var errStaleRefresh = errors.New("upstream failed, kept cached data")

// TTLs are how long each source's cache entries stay fresh
type TTLs struct {
	Weather      time.Duration
	WaterQuality time.Duration
	Tides        time.Duration
}

// Options configures a Service
type Options struct {
	Weather     WeatherSource
	Water       WaterSource
	Tides       tides.Source
	Cache       cache.Store // nil disables caching
	TTL         TTLs
	Location    *time.Location
	Logger      *slog.Logger
	Now         func() time.Time
	Concurrency int // parallel beach loads; 0 means 4
}

// Service loads and merges conditions for beaches
type Service struct {
	weather     WeatherSource
	water       WaterSource
	tides       tides.Source
	fallback    *fetch.Fallback
	ttl         TTLs
	loc         *time.Location
	logger      *slog.Logger
	now         func() time.Time
	concurrency int

	flight singleflight.Group
}

// NewService builds a service from opts
func NewService(opts Options) *Service {
	s := &Service{
		weather:     opts.Weather,
		water:       opts.Water,
		tides:       opts.Tides,
		ttl:         opts.TTL,
		loc:         opts.Location,
		logger:      opts.Logger,
		now:         opts.Now,
		concurrency: opts.Concurrency,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.concurrency <= 0 {
		s.concurrency = 4
	}
	s.fallback = &fetch.Fallback{Store: opts.Cache, Logger: s.logger, Now: s.now}
	return s
}

// LoadAll loads every beach in parallel. Results keep the input order and
// a beach whose sources all failed still gets an entry with its errors.
func (s *Service) LoadAll(ctx context.Context, list []models.Beach, force bool) []*models.BeachConditions {
	out := make([]*models.BeachConditions, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, b := range list {
		g.Go(func() error {
			out[i] = s.Load(gctx, b, force)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Load fetches all three sources for one beach concurrently and builds its
// snapshots. Missing sources are recorded in Errors, never returned.
func (s *Service) Load(ctx context.Context, beach models.Beach, force bool) *models.BeachConditions {
	bc := &models.BeachConditions{Beach: beach}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	fail := func(src Source, err error) {
		mu.Lock()
		defer mu.Unlock()
		bc.Errors = append(bc.Errors, fmt.Sprintf("%s: %v", src, err))
		s.logger.Warn("source unavailable", "beach", beach.ID, "source", string(src), "error", err)
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		res, err := s.loadWeather(ctx, beach, force)
		if err != nil {
			fail(SourceWeather, err)
			return
		}
		mu.Lock()
		bc.Weather, bc.Age.Weather = res.Value, res.Age
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		if !beach.HasWaterQuality() {
			return
		}
		res, err := s.loadWater(ctx, beach, force)
		if err != nil {
			fail(SourceWaterQuality, err)
			return
		}
		mu.Lock()
		bc.WaterQuality, bc.Age.WaterQuality = res.Value, res.Age
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		res, err := s.loadTides(ctx, beach.TideStationID, force)
		if err != nil {
			fail(SourceTides, err)
			return
		}
		mu.Lock()
		bc.Tides, bc.Age.Tides = res.Value, res.Age
		mu.Unlock()
	}()
	wg.Wait()

	now := s.now().In(s.loc)
	if bc.Tides != nil {
		if state, height, err := tides.State(bc.Tides.Events, now); err == nil {
			bc.TideState, bc.TideHeight = state, height
		}
	}
	bc.Snapshots = BuildSnapshots(beach, bc.Weather, bc.WaterQuality, bc.Tides, now)
	return bc
}

// Refresh forces one source to be refetched for every beach so the cache
// is warm for the next Load. It returns the first failure, if any.
func (s *Service) Refresh(ctx context.Context, list []models.Beach, src Source) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, b := range list {
		g.Go(func() error {
			var (
				stale bool
				err   error
			)
			switch src {
			case SourceWeather:
				var res fetch.Result[*models.Weather]
				res, err = s.loadWeather(gctx, b, true)
				stale = res.Stale
			case SourceWaterQuality:
				if b.HasWaterQuality() {
					var res fetch.Result[*models.WaterQuality]
					res, err = s.loadWater(gctx, b, true)
					stale = res.Stale
				}
			case SourceTides:
				var res fetch.Result[*models.TideData]
				res, err = s.loadTides(gctx, b.TideStationID, true)
				stale = res.Stale
			default:
				err = fmt.Errorf("unknown source %q", src)
			}
			if err == nil && stale {
				err = errStaleRefresh
			}
			if err != nil {
				return fmt.Errorf("refreshing %s for %s: %w", src, b.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) loadWeather(ctx context.Context, b models.Beach, force bool) (fetch.Result[*models.Weather], error) {
	if s.weather == nil {
		return fetch.Result[*models.Weather]{}, fmt.Errorf("no weather source configured")
	}
	return load(ctx, s, fetch.Request[*models.Weather]{
		Key:   cache.Key(string(SourceWeather), b.ID),
		TTL:   s.ttl.Weather,
		Force: force,
		Fetch: func(ctx context.Context) (*models.Weather, error) {
			return s.weather.GetForecast(ctx, b.Latitude, b.Longitude)
		},
	})
}

func (s *Service) loadWater(ctx context.Context, b models.Beach, force bool) (fetch.Result[*models.WaterQuality], error) {
	if s.water == nil {
		return fetch.Result[*models.WaterQuality]{}, fmt.Errorf("no water quality source configured")
	}
	return load(ctx, s, fetch.Request[*models.WaterQuality]{
		Key:   cache.Key(string(SourceWaterQuality), b.ID),
		TTL:   s.ttl.WaterQuality,
		Force: force,
		Fetch: func(ctx context.Context) (*models.WaterQuality, error) {
			return s.water.GetWaterQuality(ctx, b.Name)
		},
	})
}

func (s *Service) loadTides(ctx context.Context, stationID string, force bool) (fetch.Result[*models.TideData], error) {
	if s.tides == nil {
		return fetch.Result[*models.TideData]{}, fmt.Errorf("no tide source configured")
	}
	today := s.now().In(s.loc)
	return load(ctx, s, fetch.Request[*models.TideData]{
		Key:   cache.Key(string(SourceTides), stationID+":"+today.Format("2006-01-02")),
		TTL:   s.ttl.Tides,
		Force: force,
		Fetch: func(ctx context.Context) (*models.TideData, error) {
			return s.tides.GetTidePredictions(ctx, stationID, today, today.AddDate(0, 0, 1))
		},
	})
}

// load collapses concurrent requests for the same key into one fetch, so
// each cache key has a single writer at a time.
func load[T any](ctx context.Context, s *Service, req fetch.Request[T]) (fetch.Result[T], error) {
	flightKey := req.Key
	if req.Force {
		flightKey += "!"
	}
	v, err, _ := s.flight.Do(flightKey, func() (interface{}, error) {
		return fetch.Load(ctx, s.fallback, req)
	})
	if err != nil {
		return fetch.Result[T]{}, err
	}
	return v.(fetch.Result[T]), nil
}

// BuildSnapshots merges the sources into one snapshot per forecast hour on
// now's calendar day. Without weather there is nothing to score.
func BuildSnapshots(beach models.Beach, w *models.Weather, wq *models.WaterQuality, td *models.TideData, now time.Time) []models.ConditionSnapshot {
	if w == nil {
		return nil
	}
	y, m, d := now.Date()
	water := wq.EffectiveStatus(now)

	var snaps []models.ConditionSnapshot
	for _, h := range w.Hourly {
		at := h.Time.In(now.Location())
		if hy, hm, hd := at.Date(); hy != y || hm != m || hd != d {
			continue
		}

		code := h.WeatherCode
		snap := models.ConditionSnapshot{
			BeachID:     beach.ID,
			Time:        at,
			Temperature: h.Temperature,
			WindSpeed:   h.WindSpeed,
			UV:          h.UV,
			Water:       water,
			Crowd:       crowd.EstimateAt(at),
			Sunset:      w.Sunset,
			WeatherCode: &code,
		}
		if td != nil {
			if height, err := tides.Interpolate(td.Events, at); err == nil {
				snap.TideHeight = height
				snap.MaxTideHeight = tides.MaxHeight(td.StationID)
			}
		}
		snaps = append(snaps, snap)
	}
	return snaps
}
