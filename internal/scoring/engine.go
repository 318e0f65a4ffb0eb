package scoring

import (
	"time"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

// Weight given to the time-of-day factor for every activity.
const timeWeight = 0.1

// ScoreFactors holds the 0..1 sub-score of each condition
type ScoreFactors struct {
	Temperature  float64 `json:"temperature"`
	WaterQuality float64 `json:"water_quality"`
	Wind         float64 `json:"wind"`
	UV           float64 `json:"uv"`
	Tide         float64 `json:"tide"`
	Crowd        float64 `json:"crowd"`
	TimeOfDay    float64 `json:"time_of_day"`
}

// TimeSlotScore is the score of one activity at one beach for one hour
type TimeSlotScore struct {
	Time        time.Time       `json:"time"`
	BeachID     string          `json:"beach_id"`
	Activity    models.Activity `json:"activity"`
	Score       int             `json:"score"` // 0..100
	Factors     ScoreFactors    `json:"factors"`
	Blocked     bool            `json:"blocked"`
	BlockReason string          `json:"block_reason,omitempty"`
}

// ComputeFactors evaluates every factor scorer for a snapshot
func ComputeFactors(p ActivityProfile, snap models.ConditionSnapshot) ScoreFactors {
	return ScoreFactors{
		Temperature:  TemperatureScore(snap.Temperature, p.Temp),
		WaterQuality: WaterScore(snap.Water),
		Wind:         WindScore(snap.WindSpeed, p.Wind),
		UV:           UVScore(snap.UV, p.UV),
		Tide:         TideScore(snap.TideHeight, snap.MaxTideHeight, p.Tide),
		Crowd:        CrowdScore(snap.Crowd, p.Weights.Crowd),
		TimeOfDay:    TimeOfDayScore(p.Time, snap),
	}
}

// Combine weights the factors into a 0..100 score
func Combine(w Weights, f ScoreFactors) int {
	sum := f.Temperature*w.Temperature +
		f.WaterQuality*w.WaterQuality +
		f.Wind*w.Wind +
		f.UV*w.UV +
		f.Tide*w.Tide +
		f.Crowd*w.Crowd +
		f.TimeOfDay*timeWeight
	total := w.Sum() + timeWeight

	score := int(sum / total * 100)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreTimeSlot scores one snapshot for the profile's activity. Conditions
// that make the activity unsafe or pointless short-circuit to a blocked
// zero score.
func ScoreTimeSlot(p ActivityProfile, snap models.ConditionSnapshot) TimeSlotScore {
	slot := TimeSlotScore{
		Time:     snap.Time,
		BeachID:  snap.BeachID,
		Activity: p.Activity,
	}
	if reason, blocked := checkBlocked(p.Activity, snap); blocked {
		slot.Blocked = true
		slot.BlockReason = reason
		return slot
	}
	slot.Factors = ComputeFactors(p, snap)
	slot.Score = Combine(p.Weights, slot.Factors)
	return slot
}

// ScoreActivity is ScoreTimeSlot for an activity's registered profile
func ScoreActivity(a models.Activity, snap models.ConditionSnapshot) TimeSlotScore {
	return ScoreTimeSlot(Profile(a), snap)
}

func isRain(code int) bool {
	return (code >= 51 && code <= 67) || (code >= 80 && code <= 82)
}

// checkBlocked applies hard gates that no combination of other factors can
// outweigh. Gates need a weather code; without one nothing is blocked.
func checkBlocked(a models.Activity, snap models.ConditionSnapshot) (string, bool) {
	if snap.WeatherCode == nil {
		return "", false
	}
	code := *snap.WeatherCode

	switch {
	case code >= 95 && code <= 99:
		return "thunderstorm", true
	case code >= 71 && code <= 77:
		return "snow", true
	}

	switch a {
	case models.Swimming:
		if snap.Temperature < 15 {
			return "too cold to swim", true
		}
		if isRain(code) {
			return "raining", true
		}
	case models.Sunbathing:
		if snap.Temperature < 18 {
			return "too cold to sunbathe", true
		}
		if code == 3 {
			return "overcast", true
		}
		if isRain(code) {
			return "raining", true
		}
	case models.Sailing:
		if snap.WindSpeed > 40 {
			return "wind too strong", true
		}
	}
	return "", false
}
