// Package crowd estimates how busy a beach is from the calendar alone.
package crowd

import "time"

// Level is a coarse label for a crowd estimate
type Level string

const (
	Quiet    Level = "quiet"
	Moderate Level = "moderate"
	Busy     Level = "busy"
)

// Estimate returns a 0..1 crowd level for the given month, weekday and hour.
// The three factors multiply, so any strongly off-peak factor suppresses the
// whole estimate.
func Estimate(month time.Month, weekday time.Weekday, hour int) float64 {
	v := seasonFactor(month) * dayFactor(weekday) * hourFactor(hour)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// EstimateAt is Estimate for a wall-clock time
func EstimateAt(t time.Time) float64 {
	return Estimate(t.Month(), t.Weekday(), t.Hour())
}

// LevelOf buckets an estimate into a label
func LevelOf(v float64) Level {
	switch {
	case v < 0.3:
		return Quiet
	case v < 0.7:
		return Moderate
	default:
		return Busy
	}
}

func seasonFactor(month time.Month) float64 {
	switch month {
	case time.June, time.July, time.August:
		return 1.0
	case time.May, time.September:
		return 0.6
	case time.April, time.October:
		return 0.3
	default:
		return 0.1
	}
}

func dayFactor(weekday time.Weekday) float64 {
	switch weekday {
	case time.Saturday, time.Sunday:
		return 1.0
	case time.Friday:
		return 0.7
	default:
		return 0.4
	}
}

func hourFactor(hour int) float64 {
	switch {
	case hour >= 12 && hour <= 16:
		return 1.0
	case hour == 10 || hour == 11 || hour == 17 || hour == 18:
		return 0.7
	case hour == 8 || hour == 9 || hour == 19 || hour == 20:
		return 0.4
	case hour == 6 || hour == 7 || hour == 21:
		return 0.2
	default:
		return 0.1
	}
}
