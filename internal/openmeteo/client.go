// Package openmeteo fetches current conditions and hourly forecasts from
// the Open-Meteo API.
package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ngmaloney/beach-terminal/internal/fetch"
	"github.com/ngmaloney/beach-terminal/internal/models"
)

const timeLayout = "2006-01-02T15:04"

var (
	currentFields = []string{"temperature_2m", "relative_humidity_2m", "apparent_temperature", "weather_code", "wind_speed_10m"}
	hourlyFields  = []string{"temperature_2m", "apparent_temperature", "weathercode", "windspeed_10m", "winddirection_10m", "uv_index", "precipitation_probability"}
	dailyFields   = []string{"sunrise", "sunset", "uv_index_max"}
)

// Client talks to the Open-Meteo forecast endpoint
type Client struct {
	baseURL  string
	httpCfg  fetch.HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	location *time.Location
	now      func() time.Time
}

// NewClient creates a forecast client whose times are interpreted in loc
func NewClient(loc *time.Location, timeout time.Duration) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		httpCfg:  fetch.DefaultHTTPConfig(timeout),
		circuit:  fetch.NewBreaker("openmeteo"),
		location: loc,
		now:      time.Now,
	}
}

// GetForecast returns current conditions, sun times and two days of hourly
// forecast for a coordinate.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", lat))
	values.Set("longitude", fmt.Sprintf("%.4f", lon))
	values.Set("current", strings.Join(currentFields, ","))
	values.Set("hourly", strings.Join(hourlyFields, ","))
	values.Set("daily", strings.Join(dailyFields, ","))
	values.Set("forecast_days", "2")
	values.Set("timezone", c.timezone())

	var payload forecastResponse
	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := fetch.GetJSON(ctx, c.httpCfg, c.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	return c.toWeather(payload)
}

// timezone names the zone Open-Meteo should report times in. Zones it cannot
// resolve by IANA name, such as Local or a fixed offset, ask for the
// coordinate's own zone.
func (c *Client) timezone() string {
	name := c.location.String()
	if name == "" || name == "Local" {
		return "auto"
	}
	if _, err := time.LoadLocation(name); err != nil {
		return "auto"
	}
	return name
}

// zoneFor returns the location the response's wall-clock times are in
func (c *Client) zoneFor(p forecastResponse) *time.Location {
	if c.timezone() == "auto" {
		return time.FixedZone(c.location.String(), p.UTCOffset)
	}
	return c.location
}

func (c *Client) toWeather(p forecastResponse) (*models.Weather, error) {
	loc := c.zoneFor(p)
	w := &models.Weather{
		Temperature: p.Current.Temperature,
		FeelsLike:   p.Current.FeelsLike,
		Humidity:    int(p.Current.Humidity),
		WeatherCode: p.Current.WeatherCode,
		Condition:   models.ConditionFromWMO(p.Current.WeatherCode),
		WindSpeed:   p.Current.WindSpeed,
		FetchedAt:   c.now(),
	}

	if len(p.Daily.Sunrise) > 0 {
		if t, err := time.ParseInLocation(timeLayout, p.Daily.Sunrise[0], loc); err == nil {
			w.Sunrise = t
		}
	}
	if len(p.Daily.Sunset) > 0 {
		if t, err := time.ParseInLocation(timeLayout, p.Daily.Sunset[0], loc); err == nil {
			w.Sunset = t
		}
	}
	if len(p.Daily.UVIndexMax) > 0 {
		w.UVMax = p.Daily.UVIndexMax[0]
	}

	h := p.Hourly
	n := len(h.Time)
	if len(h.Temperature) < n || len(h.WeatherCode) < n || len(h.WindSpeed) < n {
		return nil, fmt.Errorf("%w: hourly arrays have mismatched lengths", fetch.ErrDecode)
	}
	for i := 0; i < n; i++ {
		t, err := time.ParseInLocation(timeLayout, h.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("%w: hourly time %q: %w", fetch.ErrDecode, h.Time[i], err)
		}
		hour := models.HourlyForecast{
			Time:        t,
			Temperature: h.Temperature[i],
			WeatherCode: h.WeatherCode[i],
			Condition:   models.ConditionFromWMO(h.WeatherCode[i]),
			WindSpeed:   h.WindSpeed[i],
			FeelsLike:   at(h.FeelsLike, i, h.Temperature[i]),
			UV:          at(h.UV, i, 0),
		}
		if i < len(h.WindDirection) {
			hour.WindDirection = models.CompassDirection(h.WindDirection[i])
		}
		if i < len(h.PrecipitationProb) && h.PrecipitationProb[i] != nil {
			hour.PrecipitationChance = *h.PrecipitationProb[i]
		}
		w.Hourly = append(w.Hourly, hour)
	}

	// Current UV comes from the forecast hour we are in.
	now := c.now().In(loc)
	for _, hour := range w.Hourly {
		if hour.Time.Year() == now.Year() && hour.Time.YearDay() == now.YearDay() && hour.Time.Hour() == now.Hour() {
			w.UV = hour.UV
			break
		}
	}
	return w, nil
}

func at(values []float64, i int, fallback float64) float64 {
	if i < len(values) {
		return values[i]
	}
	return fallback
}

type forecastResponse struct {
	UTCOffset int `json:"utc_offset_seconds"`
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		FeelsLike   float64 `json:"apparent_temperature"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly struct {
		Time              []string  `json:"time"`
		Temperature       []float64 `json:"temperature_2m"`
		FeelsLike         []float64 `json:"apparent_temperature"`
		WeatherCode       []int     `json:"weathercode"`
		WindSpeed         []float64 `json:"windspeed_10m"`
		WindDirection     []float64 `json:"winddirection_10m"`
		UV                []float64 `json:"uv_index"`
		PrecipitationProb []*int    `json:"precipitation_probability"`
	} `json:"hourly"`
	Daily struct {
		Sunrise    []string  `json:"sunrise"`
		Sunset     []string  `json:"sunset"`
		UVIndexMax []float64 `json:"uv_index_max"`
	} `json:"daily"`
}
