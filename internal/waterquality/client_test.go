package waterquality

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/fetch"
	"github.com/ngmaloney/beach-terminal/internal/models"
)

func intPtr(v int) *int { return &v }

func newTestClient(url string, now time.Time) *Client {
	client := NewClient(time.UTC, time.Second)
	client.baseURL = url
	client.httpCfg = fetch.HTTPClientConfig{
		Client:  &http.Client{Timeout: 2 * time.Second},
		Backoff: fetch.BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond},
	}
	client.now = func() time.Time { return now }
	return client
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ecoli    *int
		advisory string
		want     models.WaterStatus
	}{
		{"low count", intPtr(50), "", models.WaterSafe},
		{"just under advisory", intPtr(199), "", models.WaterSafe},
		{"advisory threshold", intPtr(200), "", models.WaterAdvisory},
		{"closure threshold is inclusive advisory", intPtr(400), "", models.WaterAdvisory},
		{"over closure threshold", intPtr(401), "", models.WaterClosed},
		{"no count", nil, "", models.WaterUnknown},
		{"closure text wins", intPtr(20), "Beach CLOSED due to sewage", models.WaterClosed},
		{"closure noun", nil, "Temporary closure", models.WaterClosed},
		{"other advisory text", intPtr(20), "Swim at own risk", models.WaterSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ecoli, tt.advisory); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetWaterQuality(t *testing.T) {
	now := time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		wantStatus models.WaterStatus
		wantEColi  *int
		wantReason string
	}{
		{
			name:       "recent safe sample",
			body:       `{"results":[{"beach_name":"Kitsilano Beach","e_coli":52.0,"sample_date":"2026-07-13"}]}`,
			wantStatus: models.WaterSafe,
			wantEColi:  intPtr(52),
		},
		{
			name:       "advisory keeps reason",
			body:       `{"results":[{"beach_name":"Kitsilano Beach","e_coli":260,"sample_date":"2026-07-12","advisory":"Elevated bacteria"}]}`,
			wantStatus: models.WaterAdvisory,
			wantEColi:  intPtr(260),
			wantReason: "Elevated bacteria",
		},
		{
			name:       "no results",
			body:       `{"results":[]}`,
			wantStatus: models.WaterUnknown,
		},
		{
			name:       "sample older than a week",
			body:       `{"results":[{"beach_name":"Kitsilano Beach","e_coli":600,"sample_date":"2026-07-01"}]}`,
			wantStatus: models.WaterUnknown,
		},
		{
			name:       "timestamp date",
			body:       `{"results":[{"beach_name":"Kitsilano Beach","e_coli":10,"sample_date":"2026-07-14T00:00:00+00:00"}]}`,
			wantStatus: models.WaterSafe,
			wantEColi:  intPtr(10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("where") != "beach_name='Kitsilano Beach'" {
					t.Errorf("where = %q", q.Get("where"))
				}
				if q.Get("order_by") != "sample_date desc" || q.Get("limit") != "1" {
					t.Errorf("unexpected query %v", q)
				}
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			wq, err := newTestClient(server.URL, now).GetWaterQuality(context.Background(), "Kitsilano Beach")
			if err != nil {
				t.Fatalf("GetWaterQuality() error = %v", err)
			}
			if wq.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", wq.Status, tt.wantStatus)
			}
			if (wq.EColi == nil) != (tt.wantEColi == nil) || (wq.EColi != nil && *wq.EColi != *tt.wantEColi) {
				t.Errorf("EColi = %v, want %v", wq.EColi, tt.wantEColi)
			}
			if wq.AdvisoryReason != tt.wantReason {
				t.Errorf("AdvisoryReason = %q, want %q", wq.AdvisoryReason, tt.wantReason)
			}
			if !wq.FetchedAt.Equal(now) {
				t.Errorf("FetchedAt = %v, want %v", wq.FetchedAt, now)
			}
		})
	}
}

func TestGetWaterQuality_Errors(t *testing.T) {
	now := time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		code int
		body string
		want error
	}{
		{"unavailable", http.StatusServiceUnavailable, "", fetch.ErrUpstream},
		{"not json", http.StatusOK, "<html>", fetch.ErrDecode},
		{"bad date", http.StatusOK, `{"results":[{"e_coli":1,"sample_date":"yesterday"}]}`, fetch.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, now).GetWaterQuality(context.Background(), "Jericho Beach")
			if !errors.Is(err, tt.want) {
				t.Errorf("GetWaterQuality() error = %v, want %v", err, tt.want)
			}
		})
	}
}
