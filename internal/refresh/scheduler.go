// Package refresh keeps cached upstream data warm on a fixed schedule.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ngmaloney/beach-terminal/internal/conditions"
	"github.com/ngmaloney/beach-terminal/internal/models"
)

// Refresher refetches one source for a set of beaches
type Refresher interface {
	Refresh(ctx context.Context, beaches []models.Beach, src conditions.Source) error
}

// Intervals are how often each source is refetched
type Intervals struct {
	Weather      time.Duration
	WaterQuality time.Duration
}

// Scheduler periodically refreshes weather and water quality.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	beaches   []models.Beach
	intervals Intervals
	timeout   time.Duration
	logger    *slog.Logger

	// OnRefresh, when set, is called after every job with its outcome.
	OnRefresh func(src conditions.Source, err error)
}

// New creates a Scheduler. Nothing runs until Start.
func New(refresher Refresher, beaches []models.Beach, intervals Intervals, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		refresher: refresher,
		beaches:   beaches,
		intervals: intervals,
		timeout:   2 * time.Minute,
		logger:    logger.With("component", "refresh"),
	}
}

// Start schedules both jobs and starts the scheduler in the background.
// The first run of each job waits one full interval.
func (s *Scheduler) Start() error {
	if len(s.beaches) == 0 {
		s.logger.Info("no beaches configured; nothing to schedule")
		return nil
	}
	s.scheduler.SingletonModeAll()

	jobs := []struct {
		src   conditions.Source
		every time.Duration
	}{
		{conditions.SourceWeather, s.intervals.Weather},
		{conditions.SourceWaterQuality, s.intervals.WaterQuality},
	}
	for _, job := range jobs {
		minutes := int(job.every.Minutes())
		if minutes <= 0 {
			minutes = 5
		}
		src := job.src
		if _, err := s.scheduler.Every(minutes).Minutes().WaitForSchedule().Tag(string(src)).Do(func() {
			s.Run(src)
		}); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

// Run refreshes one source immediately and reports the outcome
func (s *Scheduler) Run(src conditions.Source) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := s.refresher.Refresh(ctx, s.beaches, src)
	if err != nil {
		s.logger.Warn("refresh failed", "source", string(src), "error", err)
	} else {
		s.logger.Info("refresh complete", "source", string(src), "beaches", len(s.beaches), "took", time.Since(start).Round(time.Millisecond))
	}
	if s.OnRefresh != nil {
		s.OnRefresh(src, err)
	}
	return err
}

// Jobs returns the number of scheduled jobs
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
