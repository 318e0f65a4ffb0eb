package models

import "time"

// WeatherCondition is a coarse sky/precipitation category
type WeatherCondition string

const (
	ConditionClear        WeatherCondition = "clear"
	ConditionPartlyCloudy WeatherCondition = "partly_cloudy"
	ConditionCloudy       WeatherCondition = "cloudy"
	ConditionRain         WeatherCondition = "rain"
	ConditionShowers      WeatherCondition = "showers"
	ConditionThunderstorm WeatherCondition = "thunderstorm"
	ConditionSnow         WeatherCondition = "snow"
	ConditionFog          WeatherCondition = "fog"
)

// ConditionFromWMO maps a WMO weather interpretation code to a condition
func ConditionFromWMO(code int) WeatherCondition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionPartlyCloudy
	case code == 45 || code == 48:
		return ConditionFog
	case code >= 51 && code <= 55, code >= 61 && code <= 65, code >= 80 && code <= 82:
		return ConditionRain
	case code == 56 || code == 57 || code == 66 || code == 67:
		return ConditionShowers
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionThunderstorm
	}
	return ConditionCloudy
}

// Icon returns a single glyph for compact displays
func (c WeatherCondition) Icon() string {
	switch c {
	case ConditionClear:
		return "☀"
	case ConditionPartlyCloudy:
		return "⛅"
	case ConditionRain, ConditionShowers:
		return "🌧"
	case ConditionThunderstorm:
		return "⛈"
	case ConditionSnow:
		return "❄"
	case ConditionFog:
		return "🌫"
	}
	return "☁"
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassDirection converts degrees to one of 16 compass points
func CompassDirection(degrees float64) string {
	d := degrees
	for d < 0 {
		d += 360
	}
	idx := int((d+11.25)/22.5) % 16
	return compassPoints[idx]
}

// HourlyForecast is a single forecast hour
type HourlyForecast struct {
	Time                time.Time        `json:"time"`
	Temperature         float64          `json:"temperature"` // Celsius
	FeelsLike           float64          `json:"feels_like"`
	WeatherCode         int              `json:"weather_code"`
	Condition           WeatherCondition `json:"condition"`
	WindSpeed           float64          `json:"wind_speed"` // km/h
	WindDirection       string           `json:"wind_direction"`
	UV                  float64          `json:"uv"`
	PrecipitationChance int              `json:"precipitation_chance"` // percent
}

// Weather holds current conditions and today's hourly outlook for a beach
type Weather struct {
	Temperature float64          `json:"temperature"` // Celsius
	FeelsLike   float64          `json:"feels_like"`
	WeatherCode int              `json:"weather_code"`
	Condition   WeatherCondition `json:"condition"`
	Humidity    int              `json:"humidity"`   // percent
	WindSpeed   float64          `json:"wind_speed"` // km/h
	UV          float64          `json:"uv"`
	UVMax       float64          `json:"uv_max"`
	Sunrise     time.Time        `json:"sunrise"`
	Sunset      time.Time        `json:"sunset"`
	Hourly      []HourlyForecast `json:"hourly"`
	FetchedAt   time.Time        `json:"fetched_at"`
}

// HourAt returns the forecast for the given clock hour, if present
func (w *Weather) HourAt(hour int) (HourlyForecast, bool) {
	for _, h := range w.Hourly {
		if h.Time.Hour() == hour {
			return h, true
		}
	}
	return HourlyForecast{}, false
}
