package scoring

import (
	"math"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

// Degrees outside the ideal temperature range over which the score falls to 0.
const tempMargin = 5.0

// Sunset hour assumed when the snapshot does not carry one.
const defaultSunsetHour = 20

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// TemperatureScore is 1 inside the ideal range and decays linearly to 0
// over five degrees on either side.
func TemperatureScore(temp float64, ideal Range) float64 {
	switch {
	case temp < ideal.Min:
		return clamp01(1 - (ideal.Min-temp)/tempMargin)
	case temp > ideal.Max:
		return clamp01(1 - (temp-ideal.Max)/tempMargin)
	}
	return 1
}

// WindScore is 1 inside the ideal range. Below it the score is
// proportional to observed/min; above it the score decays to 0 over half the
// range width.
func WindScore(speed float64, ideal Range) float64 {
	switch {
	case speed < ideal.Min:
		if ideal.Min <= 0 {
			return 1
		}
		return clamp01(speed / ideal.Min)
	case speed > ideal.Max:
		margin := (ideal.Max - ideal.Min) / 2
		if margin <= 0 {
			return 0
		}
		return clamp01(1 - (speed-ideal.Max)/margin)
	}
	return 1
}

// WaterScore maps a water status to a score. Unknown counts as moderate risk.
func WaterScore(status models.WaterStatus) float64 {
	switch status {
	case models.WaterSafe:
		return 1.0
	case models.WaterAdvisory:
		return 0.3
	case models.WaterClosed:
		return 0.0
	}
	return 0.5
}

// UVScore scores a UV index against a preference
func UVScore(uv float64, pref UVPreference) float64 {
	switch pref {
	case UVHigh:
		return clamp01(uv / 8)
	case UVModerate:
		return 1 - clamp01(math.Abs(uv-5)/5)
	case UVLow:
		return 1 - clamp01(uv/8)
	}
	return 1
}

// TideScore scores a tide height against a preference. The height is
// normalised by the station maximum; a missing maximum yields 0.5.
func TideScore(height, maxHeight float64, pref TidePreference) float64 {
	if pref == TideAny {
		return 1
	}
	if maxHeight <= 0 {
		return 0.5
	}
	n := clamp01(height / maxHeight)
	switch pref {
	case TideHigh:
		return n
	case TideMid:
		return clamp01(1 - 2*math.Abs(n-0.5))
	case TideLow:
		return 1 - n
	}
	return 1
}

// CrowdScore penalises crowding in proportion to how much the activity cares
func CrowdScore(level, weight float64) float64 {
	return clamp01(1 - level*weight)
}

// PeaceTimeScore rewards early mornings
func PeaceTimeScore(hour int) float64 {
	switch hour {
	case 6, 7:
		return 1.0
	case 8:
		return 0.8
	case 5, 9:
		return 0.5
	}
	return 0.2
}

// SunsetTimeScore scores an hour by its distance from the day's sunset hour
func SunsetTimeScore(hour, sunsetHour int) float64 {
	d := hour - sunsetHour
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 1.0
	case 1:
		return 0.9
	case 2:
		return 0.5
	case 3:
		return 0.2
	}
	return 0.1
}

// TimeOfDayScore dispatches on the profile's time rule
func TimeOfDayScore(rule TimeRule, snap models.ConditionSnapshot) float64 {
	switch rule {
	case TimePeace:
		return PeaceTimeScore(snap.Hour())
	case TimeSunset:
		sunset := defaultSunsetHour
		if !snap.Sunset.IsZero() {
			sunset = snap.Sunset.Hour()
		}
		return SunsetTimeScore(snap.Hour(), sunset)
	}
	return 1.0
}
