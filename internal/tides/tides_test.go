package tides

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.January, day, hour, minute, 0, 0, time.UTC)
}

func sampleDay() []models.TideEvent {
	return []models.TideEvent{
		{Time: at(1, 2, 15), Type: models.TideHigh, Height: 4.8},
		{Time: at(1, 8, 45), Type: models.TideLow, Height: 1.2},
		{Time: at(1, 14, 34), Type: models.TideHigh, Height: 4.3},
		{Time: at(1, 21, 0), Type: models.TideLow, Height: 0.8},
	}
}

func TestInterpolate_ExactEvent(t *testing.T) {
	for _, e := range sampleDay() {
		got, err := Interpolate(sampleDay(), e.Time)
		if err != nil {
			t.Fatalf("Interpolate(%v) error = %v", e.Time, err)
		}
		if got != e.Height {
			t.Errorf("Interpolate(%v) = %v, want %v", e.Time, got, e.Height)
		}
	}
}

func TestInterpolate_RisingIsBoundedAndMonotonic(t *testing.T) {
	events := sampleDay()
	prev := 1.2
	for m := 9*60 + 0; m < 14*60+34; m += 15 {
		h, err := Interpolate(events, at(1, m/60, m%60))
		if err != nil {
			t.Fatalf("Interpolate() error = %v", err)
		}
		if h <= 1.2 || h >= 4.3 {
			t.Fatalf("Interpolate(%02d:%02d) = %v, want strictly between 1.2 and 4.3", m/60, m%60, h)
		}
		if h <= prev {
			t.Fatalf("Interpolate(%02d:%02d) = %v, not increasing from %v", m/60, m%60, h, prev)
		}
		prev = h
	}
}

func TestInterpolate_MidpointIsAverage(t *testing.T) {
	events := []models.TideEvent{
		{Time: at(2, 6, 0), Type: models.TideLow, Height: 1.0},
		{Time: at(2, 12, 0), Type: models.TideHigh, Height: 4.0},
	}
	got, err := Interpolate(events, at(2, 9, 0))
	if err != nil {
		t.Fatalf("Interpolate() error = %v", err)
	}
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Interpolate() at midpoint = %v, want 2.5", got)
	}
}

func TestInterpolate_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		when time.Time
		want float64
	}{
		{"before first event", at(1, 0, 30), 4.8},
		{"after last event", at(1, 23, 0), 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(sampleDay(), tt.when)
			if err != nil {
				t.Fatalf("Interpolate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Interpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterpolate_NoData(t *testing.T) {
	_, err := Interpolate(sampleDay(), at(5, 12, 0))
	if !errors.Is(err, ErrNoTideData) {
		t.Errorf("Interpolate() error = %v, want ErrNoTideData", err)
	}

	_, err = Interpolate(nil, at(1, 12, 0))
	if !errors.Is(err, ErrNoTideData) {
		t.Errorf("Interpolate(nil) error = %v, want ErrNoTideData", err)
	}
}

func TestMaxHeight(t *testing.T) {
	if got := MaxHeight(PointAtkinsonID); got != 4.8 {
		t.Errorf("MaxHeight(PointAtkinson) = %v, want 4.8", got)
	}
	if got := MaxHeight("unknown"); got != DefaultMaxHeight {
		t.Errorf("MaxHeight(unknown) = %v, want %v", got, DefaultMaxHeight)
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		name string
		when time.Time
		want models.TideState
	}{
		{"rising toward high", at(1, 11, 30), models.TideRising},
		{"falling toward low", at(1, 5, 30), models.TideFalling},
		{"right at the high", at(1, 14, 30), models.TideAtHigh},
		{"just after the low", at(1, 8, 50), models.TideAtLow},
		{"after last event", at(1, 23, 0), models.TideRising},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := State(sampleDay(), tt.when)
			if err != nil {
				t.Fatalf("State() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, _, err := State(nil, at(1, 12, 0)); !errors.Is(err, ErrNoTideData) {
		t.Errorf("State(nil) error = %v, want ErrNoTideData", err)
	}
}

func TestNextExtremes(t *testing.T) {
	high, low := NextExtremes(sampleDay(), at(1, 0, 0))
	if high == nil || high.Height != 4.8 {
		t.Errorf("next high = %+v, want 4.8 m", high)
	}
	if low == nil || low.Height != 1.2 {
		t.Errorf("next low = %+v, want 1.2 m", low)
	}

	high, low = NextExtremes(sampleDay(), at(1, 22, 0))
	if high != nil || low != nil {
		t.Errorf("NextExtremes() past the data = %+v, %+v, want nil, nil", high, low)
	}
}

func TestHourlyHeights(t *testing.T) {
	heights, err := HourlyHeights(sampleDay(), at(1, 0, 0), 6, 21)
	if err != nil {
		t.Fatalf("HourlyHeights() error = %v", err)
	}
	if len(heights) != 16 {
		t.Fatalf("len(heights) = %d, want 16", len(heights))
	}
	if heights[len(heights)-1] != 0.8 {
		t.Errorf("height at 21:00 = %v, want 0.8", heights[len(heights)-1])
	}

	if _, err := HourlyHeights(sampleDay(), at(9, 0, 0), 6, 21); !errors.Is(err, ErrNoTideData) {
		t.Errorf("HourlyHeights() error = %v, want ErrNoTideData", err)
	}
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource(time.UTC)

	data, err := src.GetTidePredictions(context.Background(), PointAtkinsonID, at(1, 0, 0), at(2, 0, 0))
	if err != nil {
		t.Fatalf("GetTidePredictions() error = %v", err)
	}
	if len(data.Events) != 8 {
		t.Fatalf("len(Events) = %d, want 8", len(data.Events))
	}
	first := data.Events[0]
	if first.Type != models.TideHigh || first.Height != 4.8 || !first.Time.Equal(at(1, 2, 15)) {
		t.Errorf("first event = %+v, want 4.8 m high at 02:15", first)
	}

	data, err = src.GetTidePredictions(context.Background(), PointAtkinsonID, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetTidePredictions() error = %v", err)
	}
	if len(data.Events) != 0 {
		t.Errorf("len(Events) for July = %d, want 0", len(data.Events))
	}
}
