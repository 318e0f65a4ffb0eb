// Package tides estimates tide height between sparse high/low predictions.
package tides

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

// ErrNoTideData is returned when no predictions exist for the requested date
var ErrNoTideData = errors.New("no tide data for requested date")

// DefaultMaxHeight is used for stations without a recorded maximum (metres)
const DefaultMaxHeight = 4.8

// Historical maximum heights above chart datum, in metres.
var maxHeights = map[string]float64{
	PointAtkinsonID: 4.8,
	"9447130":       4.4, // Seattle
	"9414290":       2.4, // San Francisco
}

// Source provides tide predictions for a station over a date range
type Source interface {
	GetTidePredictions(ctx context.Context, stationID string, startDate, endDate time.Time) (*models.TideData, error)
}

// MaxHeight returns the fixed historical maximum tide height for a station
func MaxHeight(stationID string) float64 {
	if h, ok := maxHeights[stationID]; ok {
		return h
	}
	return DefaultMaxHeight
}

// Interpolate estimates the tide height at the given moment using only the
// predictions on at's calendar day. Between two events the curve follows a
// half cosine; outside the first and last event the boundary height is held.
func Interpolate(events []models.TideEvent, at time.Time) (float64, error) {
	td := models.TideData{Events: events}
	day := sorted(td.GetEventsForDay(at))
	if len(day) == 0 {
		return 0, ErrNoTideData
	}

	if !at.After(day[0].Time) {
		return day[0].Height, nil
	}
	last := day[len(day)-1]
	if !at.Before(last.Time) {
		return last.Height, nil
	}

	for i := 1; i < len(day); i++ {
		prev, next := day[i-1], day[i]
		if at.Equal(prev.Time) {
			return prev.Height, nil
		}
		if at.Before(next.Time) {
			return between(prev, next, at), nil
		}
	}
	return last.Height, nil
}

// HourlyHeights interpolates the height at the top of each hour from..to
// (inclusive) on day.
func HourlyHeights(events []models.TideEvent, day time.Time, from, to int) ([]float64, error) {
	if to < from {
		return nil, nil
	}
	heights := make([]float64, 0, to-from+1)
	for h := from; h <= to; h++ {
		at := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
		height, err := Interpolate(events, at)
		if err != nil {
			return nil, err
		}
		heights = append(heights, height)
	}
	return heights, nil
}

// State reports whether the tide is rising, falling, or sitting at an
// extreme at the given moment. Events may span several days.
func State(events []models.TideEvent, at time.Time) (models.TideState, float64, error) {
	prev, next := surrounding(sorted(events), at)

	switch {
	case prev != nil && next != nil:
		h := between(*prev, *next, at)
		threshold := math.Abs(next.Height-prev.Height) * 0.05
		if math.Abs(h-next.Height) < threshold {
			return extremeState(*next), h, nil
		}
		if math.Abs(h-prev.Height) < threshold {
			return extremeState(*prev), h, nil
		}
		if next.IsHigh() {
			return models.TideRising, h, nil
		}
		return models.TideFalling, h, nil
	case prev != nil:
		if prev.IsHigh() {
			return models.TideFalling, prev.Height, nil
		}
		return models.TideRising, prev.Height, nil
	case next != nil:
		if next.IsHigh() {
			return models.TideRising, next.Height, nil
		}
		return models.TideFalling, next.Height, nil
	}
	return "", 0, ErrNoTideData
}

// NextExtremes returns the first high and first low tide after at.
// Either may be nil when the predictions run out.
func NextExtremes(events []models.TideEvent, at time.Time) (high, low *models.TideEvent) {
	for _, e := range sorted(events) {
		if !e.Time.After(at) {
			continue
		}
		e := e
		if e.IsHigh() && high == nil {
			high = &e
		}
		if !e.IsHigh() && low == nil {
			low = &e
		}
		if high != nil && low != nil {
			break
		}
	}
	return high, low
}

func between(prev, next models.TideEvent, at time.Time) float64 {
	total := next.Time.Sub(prev.Time).Seconds()
	if total <= 0 {
		return prev.Height
	}
	p := at.Sub(prev.Time).Seconds() / total
	cp := (1 - math.Cos(p*math.Pi)) / 2
	return prev.Height + (next.Height-prev.Height)*cp
}

func surrounding(events []models.TideEvent, at time.Time) (prev, next *models.TideEvent) {
	for i := range events {
		if events[i].Time.After(at) {
			next = &events[i]
			break
		}
		prev = &events[i]
	}
	return prev, next
}

func extremeState(e models.TideEvent) models.TideState {
	if e.IsHigh() {
		return models.TideAtHigh
	}
	return models.TideAtLow
}

func sorted(events []models.TideEvent) []models.TideEvent {
	out := make([]models.TideEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
