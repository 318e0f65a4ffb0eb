package models

import "time"

// ConditionSnapshot is the merged set of scoring inputs for one beach at one hour
type ConditionSnapshot struct {
	BeachID       string
	Time          time.Time
	Temperature   float64 // Celsius
	WindSpeed     float64 // km/h
	UV            float64
	Water         WaterStatus
	TideHeight    float64 // metres
	MaxTideHeight float64 // metres; zero or less means unknown
	Crowd         float64 // 0..1

	// Sunset is the day's sunset time; zero when unknown.
	Sunset time.Time
	// WeatherCode is the WMO code for the hour; nil when unknown.
	WeatherCode *int
}

// Hour returns the clock hour of the snapshot
func (s ConditionSnapshot) Hour() int {
	return s.Time.Hour()
}

// SourceAge records how old the data behind a beach's snapshots is.
// A zero age means the data was fetched live.
type SourceAge struct {
	Weather      time.Duration
	WaterQuality time.Duration
	Tides        time.Duration
}

// BeachConditions bundles everything known about a beach right now
type BeachConditions struct {
	Beach        Beach
	Weather      *Weather
	WaterQuality *WaterQuality
	Tides        *TideData
	TideHeight   float64
	TideState    TideState
	Snapshots    []ConditionSnapshot // one per forecast hour for today
	Age          SourceAge
	Errors       []string // per-source failures that left data missing
}
