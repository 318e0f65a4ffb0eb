// Package waterquality fetches E. coli sampling results for Vancouver
// beaches from the city's open data portal.
package waterquality

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

// E. coli thresholds in CFU/100mL
const (
	AdvisoryThreshold = 200
	ClosureThreshold  = 400
)

// Samples older than this are reported as unknown.
const maxSampleAge = 7 * 24 * time.Hour

// Client queries the beach-water-quality dataset
type Client struct {
	baseURL  string
	httpCfg  fetch.HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	location *time.Location
	now      func() time.Time
}

// NewClient creates a water quality client. Sample dates are read in loc.
func NewClient(loc *time.Location, timeout time.Duration) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		baseURL:  "https://opendata.vancouver.ca/api/explore/v2.1/catalog/datasets/beach-water-quality/records",
		httpCfg:  fetch.DefaultHTTPConfig(timeout),
		circuit:  fetch.NewBreaker("water-quality"),
		location: loc,
		now:      time.Now,
	}
}

// GetWaterQuality returns the most recent sample for the named beach.
// A beach with no usable sample is reported with WaterUnknown rather than
// an error.
func (c *Client) GetWaterQuality(ctx context.Context, beachName string) (*models.WaterQuality, error) {
	params := url.Values{}
	params.Set("where", fmt.Sprintf("beach_name='%s'", strings.ReplaceAll(beachName, "'", "''")))
	params.Set("order_by", "sample_date desc")
	params.Set("limit", "1")

	var resp recordsResponse
	u := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	if err := fetch.GetJSON(ctx, c.httpCfg, c.circuit, u, &resp); err != nil {
		return nil, fmt.Errorf("fetching water quality for %s: %w", beachName, err)
	}

	now := c.now()
	wq := &models.WaterQuality{Status: models.WaterUnknown, FetchedAt: now}
	if len(resp.Results) == 0 {
		return wq, nil
	}

	rec := resp.Results[0]
	if rec.SampleDate == "" {
		return wq, nil
	}
	// The portal sometimes returns full timestamps; only the date matters.
	date := rec.SampleDate
	if len(date) > 10 {
		date = date[:10]
	}
	sampled, err := time.ParseInLocation("2006-01-02", date, c.location)
	if err != nil {
		return nil, fmt.Errorf("%w: sample date %q: %w", fetch.ErrDecode, rec.SampleDate, err)
	}
	wq.SampleDate = sampled
	if now.Sub(sampled) > maxSampleAge {
		return wq, nil
	}

	var count *int
	if rec.EColi != nil {
		v := int(*rec.EColi)
		count = &v
	}
	wq.EColi = count
	wq.Status = Classify(count, rec.Advisory)
	if wq.Status == models.WaterAdvisory || wq.Status == models.WaterClosed {
		wq.AdvisoryReason = rec.Advisory
	}
	return wq, nil
}

// Classify maps an E. coli count and advisory text to a status. An advisory
// that mentions a closure wins over the count.
func Classify(ecoli *int, advisory string) models.WaterStatus {
	adv := strings.ToLower(advisory)
	if strings.Contains(adv, "closed") || strings.Contains(adv, "closure") {
		return models.WaterClosed
	}
	switch {
	case ecoli == nil:
		return models.WaterUnknown
	case *ecoli > ClosureThreshold:
		return models.WaterClosed
	case *ecoli >= AdvisoryThreshold:
		return models.WaterAdvisory
	}
	return models.WaterSafe
}

type recordsResponse struct {
	Results []struct {
		BeachName  string   `json:"beach_name"`
		EColi      *float64 `json:"e_coli"`
		SampleDate string   `json:"sample_date"`
		Advisory   string   `json:"advisory"`
	} `json:"results"`
}
