// Package scoring turns merged beach conditions into activity scores and
// ranked time windows.
package scoring

import "github.com/ngmaloney/beach-terminal/internal/models"

// UVPreference describes how an activity responds to UV index
type UVPreference int

const (
	UVAny UVPreference = iota
	UVLow
	UVModerate
	UVHigh
)

// TidePreference describes the tide level an activity favours
type TidePreference int

const (
	TideAny TidePreference = iota
	TideLow
	TideMid
	TideHigh
)

// TimeRule selects the time-of-day scorer for an activity
type TimeRule int

const (
	TimeNone TimeRule = iota
	TimePeace
	TimeSunset
)

// Range is an inclusive ideal interval
type Range struct {
	Min, Max float64
}

// Weights holds the relative importance of each factor. A zero weight
// removes the factor from the score entirely.
type Weights struct {
	Temperature  float64
	WaterQuality float64
	Wind         float64
	UV           float64
	Tide         float64
	Crowd        float64
}

// Sum adds every factor weight
func (w Weights) Sum() float64 {
	return w.Temperature + w.WaterQuality + w.Wind + w.UV + w.Tide + w.Crowd
}

// ActivityProfile is the fixed scoring configuration for one activity
type ActivityProfile struct {
	Activity models.Activity
	Weights  Weights
	Temp     Range // Celsius
	Wind     Range // km/h
	UV       UVPreference
	Tide     TidePreference
	Time     TimeRule
}

var profiles = map[models.Activity]ActivityProfile{
	models.Swimming: {
		Activity: models.Swimming,
		Weights:  Weights{Temperature: 0.3, WaterQuality: 0.4, Wind: 0.1, UV: 0.05, Tide: 0.15, Crowd: 0.1},
		Temp:     Range{20, 28},
		Wind:     Range{0, 15},
		UV:       UVModerate,
		Tide:     TideMid,
	},
	models.Sunbathing: {
		Activity: models.Sunbathing,
		Weights:  Weights{Temperature: 0.35, Wind: 0.25, UV: 0.25, Crowd: 0.15},
		Temp:     Range{24, 32},
		Wind:     Range{0, 10},
		UV:       UVHigh,
		Tide:     TideAny,
	},
	models.Sailing: {
		Activity: models.Sailing,
		Weights:  Weights{Temperature: 0.1, Wind: 0.6, Tide: 0.2, Crowd: 0.1},
		Temp:     Range{15, 30},
		Wind:     Range{15, 25},
		UV:       UVAny,
		Tide:     TideHigh,
	},
	models.Sunset: {
		Activity: models.Sunset,
		Weights:  Weights{Temperature: 0.15, Wind: 0.1, Crowd: 0.15},
		Temp:     Range{15, 28},
		Wind:     Range{0, 20},
		UV:       UVAny,
		Tide:     TideAny,
		Time:     TimeSunset,
	},
	models.Peace: {
		Activity: models.Peace,
		Weights:  Weights{Temperature: 0.1, Wind: 0.1, UV: 0.1, Crowd: 0.7},
		Temp:     Range{12, 25},
		Wind:     Range{0, 15},
		UV:       UVLow,
		Tide:     TideAny,
		Time:     TimePeace,
	},
}

// Profile returns the scoring profile for an activity. Unknown activities
// fall back to the swimming profile.
func Profile(a models.Activity) ActivityProfile {
	if p, ok := profiles[a]; ok {
		return p
	}
	return profiles[models.Swimming]
}
