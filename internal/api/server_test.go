package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/beach-terminal/internal/beaches"
	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/scoring"
)

// Tuesday
var testDay = time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

type fakeLoader struct{}

func (fakeLoader) Load(ctx context.Context, beach models.Beach, force bool) *models.BeachConditions {
	bc := &models.BeachConditions{Beach: beach, Age: models.SourceAge{WaterQuality: 3 * time.Hour}}
	for h := 6; h <= 21; h++ {
		code := 0
		bc.Snapshots = append(bc.Snapshots, models.ConditionSnapshot{
			BeachID:       beach.ID,
			Time:          testDay.Add(time.Duration(h) * time.Hour),
			Temperature:   24,
			WindSpeed:     8,
			UV:            5,
			Water:         models.WaterSafe,
			TideHeight:    2.4,
			MaxTideHeight: 4.8,
			WeatherCode:   &code,
		})
	}
	return bc
}

func (f fakeLoader) LoadAll(ctx context.Context, list []models.Beach, force bool) []*models.BeachConditions {
	out := make([]*models.BeachConditions, 0, len(list))
	for _, b := range list {
		out = append(out, f.Load(ctx, b, force))
	}
	return out
}

func newTestServer(hour int) *Server {
	s := NewServer(fakeLoader{}, nil, time.UTC)
	s.now = func() time.Time { return testDay.Add(time.Duration(hour)*time.Hour + 15*time.Minute) }
	return s
}

func get(t *testing.T, s *Server, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if out != nil {
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	var body map[string]string
	require.Equal(t, http.StatusOK, get(t, newTestServer(10), "/health", &body))
	require.Equal(t, "ok", body["status"])
}

func TestBeaches(t *testing.T) {
	var body []models.Beach
	require.Equal(t, http.StatusOK, get(t, newTestServer(10), "/api/v1/beaches", &body))
	require.Len(t, body, 12)
	require.Equal(t, "kitsilano", body[0].ID)
}

func TestBeaches_Nearest(t *testing.T) {
	var body []beaches.Ranked
	path := "/api/v1/beaches?lat=49.2621&lon=-123.2617"
	require.Equal(t, http.StatusOK, get(t, newTestServer(10), path, &body))
	require.Len(t, body, 12)
	require.Equal(t, "wreck", body[0].Beach.ID)
	require.InDelta(t, 0, body[0].Distance, 0.001)
	require.LessOrEqual(t, body[0].Distance, body[1].Distance)

	for _, bad := range []string{"?lat=49.2", "?lat=abc&lon=-123", "?lat=91&lon=-123"} {
		var e map[string]string
		require.Equal(t, http.StatusBadRequest, get(t, newTestServer(10), "/api/v1/beaches"+bad, &e), bad)
	}
}

func TestWindows(t *testing.T) {
	var body windowsResponse
	code := get(t, newTestServer(10), "/api/v1/beaches/kitsilano/windows?activity=swim", &body)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, models.Swimming, body.Activity)
	require.NotEmpty(t, body.Windows)
	require.LessOrEqual(t, len(body.Windows), 3)
	require.GreaterOrEqual(t, body.Windows[0].StartHour, 10)
	require.Greater(t, body.Windows[0].PeakScore, scoring.WindowFloor)
	require.False(t, body.AllPassed)
	require.Empty(t, body.Message)
	require.Equal(t, 3*time.Hour, body.Stale.WaterQuality)
}

func TestWindows_AfterCutoff(t *testing.T) {
	var body windowsResponse
	code := get(t, newTestServer(22), "/api/v1/beaches/jericho/windows", &body)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, body.Windows)
	require.True(t, body.AllPassed)
	require.Equal(t, "Best times have passed for today", body.Message)
}

func TestWindows_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown beach", "/api/v1/beaches/bondi/windows", http.StatusNotFound},
		{"unknown activity", "/api/v1/beaches/kitsilano/windows?activity=surfing", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			require.Equal(t, tt.want, get(t, newTestServer(10), tt.path, &body))
			require.NotEmpty(t, body["error"])
		})
	}
}

func TestBest(t *testing.T) {
	var body bestResponse
	require.Equal(t, http.StatusOK, get(t, newTestServer(12), "/api/v1/best?activity=swimming", &body))
	require.Len(t, body.Rankings, 12)
	require.NotNil(t, body.Best)
	require.GreaterOrEqual(t, body.Best.Slot.Score, scoring.BestNowThreshold)
}

func TestCrowd(t *testing.T) {
	var body crowdResponse
	// July, Saturday, 2pm
	require.Equal(t, http.StatusOK, get(t, newTestServer(10), "/api/v1/crowd?month=7&weekday=6&hour=14", &body))
	require.Greater(t, body.Crowd, 0.8)
	require.Equal(t, "busy", body.Level)

	// January, Tuesday, 7am
	require.Equal(t, http.StatusOK, get(t, newTestServer(10), "/api/v1/crowd?month=1&weekday=2&hour=7", &body))
	require.Less(t, body.Crowd, 0.2)
	require.Equal(t, "quiet", body.Level)

	// Defaults to now
	require.Equal(t, http.StatusOK, get(t, newTestServer(10), "/api/v1/crowd", &body))
	require.Equal(t, 7, body.Month)
	require.Equal(t, 2, body.Weekday)
	require.Equal(t, 10, body.Hour)
}

func TestCrowd_Invalid(t *testing.T) {
	tests := []string{
		"/api/v1/crowd?month=13",
		"/api/v1/crowd?weekday=7",
		"/api/v1/crowd?hour=-1",
		"/api/v1/crowd?hour=noon",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			require.Equal(t, http.StatusBadRequest, get(t, newTestServer(10), path, nil))
		})
	}
}
