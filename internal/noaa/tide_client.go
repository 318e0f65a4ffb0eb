// Package noaa fetches tide predictions from the NOAA CO-OPS API for US
// stations.
package noaa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ngmaloney/beach-terminal/internal/fetch"
	"github.com/ngmaloney/beach-terminal/internal/models"
)

// NOAATideClient implements tides.Source using the NOAA CO-OPS API
type NOAATideClient struct {
	baseURL  string
	httpCfg  fetch.HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	location *time.Location
}

// NewTideClient creates a new NOAA tide client. Event times are parsed in
// loc, which should be the station's local zone.
func NewTideClient(loc *time.Location) *NOAATideClient {
	if loc == nil {
		loc = time.Local
	}
	return &NOAATideClient{
		baseURL:  "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter",
		httpCfg:  fetch.DefaultHTTPConfig(30 * time.Second),
		circuit:  fetch.NewBreaker("noaa-tides"),
		location: loc,
	}
}

// GetTidePredictions retrieves high/low tide predictions for a date range
func (c *NOAATideClient) GetTidePredictions(ctx context.Context, stationID string, startDate, endDate time.Time) (*models.TideData, error) {
	params := url.Values{}
	params.Add("begin_date", startDate.Format("20060102"))
	params.Add("end_date", endDate.Format("20060102"))
	params.Add("station", stationID)
	params.Add("product", "predictions")
	params.Add("datum", "MLLW")        // Mean Lower Low Water
	params.Add("time_zone", "lst_ldt") // Local standard/daylight time
	params.Add("interval", "hilo")     // High and low tides only
	params.Add("units", "metric")
	params.Add("format", "json")
	params.Add("application", "BeachTerminal")

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	var tideResp tideResponse
	if err := fetch.GetJSON(ctx, c.httpCfg, c.circuit, requestURL, &tideResp); err != nil {
		return nil, fmt.Errorf("fetching tide predictions for %s: %w", stationID, err)
	}
	if tideResp.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", fetch.ErrUpstream, tideResp.Error.Message)
	}

	tideData := &models.TideData{
		StationID:   stationID,
		StationName: tideResp.Metadata.Name,
		Events:      make([]models.TideEvent, 0, len(tideResp.Predictions)),
		UpdatedAt:   time.Now(),
	}

	for _, pred := range tideResp.Predictions {
		eventTime, err := time.ParseInLocation("2006-01-02 15:04", pred.Time, c.location)
		if err != nil {
			continue // Skip invalid times
		}

		tideType := models.TideLow
		if pred.Type == "H" {
			tideType = models.TideHigh
		}

		height, err := strconv.ParseFloat(pred.Height, 64)
		if err != nil {
			continue
		}

		tideData.Events = append(tideData.Events, models.TideEvent{
			Time:   eventTime,
			Type:   tideType,
			Height: height,
		})
	}

	return tideData, nil
}

// Internal types for NOAA CO-OPS API responses

type tideResponse struct {
	Metadata struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"metadata"`
	Predictions []struct {
		Time   string `json:"t"`
		Height string `json:"v"`    // NOAA returns this as string
		Type   string `json:"type"` // "H" or "L"
	} `json:"predictions"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
