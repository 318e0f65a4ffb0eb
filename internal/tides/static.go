package tides

import (
	"context"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

// PointAtkinsonID is the Canadian Hydrographic Service station for Vancouver
const PointAtkinsonID = "07795"

type staticPrediction struct {
	day, hour, minute int
	height            float64
	high              bool
}

// Point Atkinson high/low predictions for January 2026, metres.
var pointAtkinsonJanuary2026 = []staticPrediction{
	{1, 2, 15, 4.8, true},
	{1, 8, 45, 1.2, false},
	{1, 14, 30, 4.5, true},
	{1, 21, 0, 0.8, false},
	{2, 3, 0, 4.7, true},
	{2, 9, 30, 1.3, false},
	{2, 15, 15, 4.4, true},
	{2, 21, 45, 0.9, false},
	{3, 3, 45, 4.6, true},
	{3, 10, 15, 1.4, false},
	{3, 16, 0, 4.3, true},
	{3, 22, 30, 1.0, false},
	{4, 4, 30, 4.5, true},
	{4, 11, 0, 1.5, false},
	{4, 16, 45, 4.2, true},
	{4, 23, 15, 1.1, false},
	{5, 5, 15, 4.4, true},
	{5, 11, 45, 1.6, false},
	{5, 17, 30, 4.1, true},
	{6, 0, 0, 1.2, false},
	{6, 6, 0, 4.3, true},
	{6, 12, 30, 1.7, false},
	{6, 18, 15, 4.0, true},
	{7, 0, 45, 1.3, false},
	{7, 6, 45, 4.2, true},
	{7, 13, 15, 1.8, false},
	{7, 19, 0, 3.9, true},
	{8, 1, 30, 1.4, false},
	{8, 7, 30, 4.1, true},
	{8, 14, 0, 1.9, false},
	{8, 19, 45, 3.8, true},
	{9, 2, 15, 1.5, false},
	{9, 8, 15, 4.0, true},
	{9, 14, 45, 2.0, false},
	{9, 20, 30, 3.7, true},
	{10, 3, 0, 1.6, false},
	{10, 9, 0, 3.9, true},
	{10, 15, 30, 2.1, false},
	{10, 21, 15, 3.6, true},
	{11, 3, 45, 1.7, false},
	{11, 9, 45, 3.8, true},
	{11, 16, 15, 2.0, false},
	{11, 22, 0, 3.7, true},
	{12, 4, 30, 1.6, false},
	{12, 10, 30, 3.9, true},
	{12, 17, 0, 1.9, false},
	{12, 22, 45, 3.8, true},
	{13, 5, 15, 1.5, false},
	{13, 11, 15, 4.0, true},
	{13, 17, 45, 1.8, false},
	{13, 23, 30, 3.9, true},
	{14, 6, 0, 1.4, false},
	{14, 12, 0, 4.1, true},
	{14, 18, 30, 1.7, false},
	{15, 0, 15, 4.0, true},
	{15, 6, 45, 1.3, false},
	{15, 12, 45, 4.2, true},
	{15, 19, 15, 1.6, false},
	{16, 1, 0, 4.1, true},
	{16, 7, 30, 1.2, false},
	{16, 13, 30, 4.3, true},
	{16, 20, 0, 1.5, false},
	{17, 1, 45, 4.2, true},
	{17, 8, 15, 1.1, false},
	{17, 14, 15, 4.4, true},
	{17, 20, 45, 1.4, false},
	{18, 2, 30, 4.3, true},
	{18, 9, 0, 1.0, false},
	{18, 15, 0, 4.5, true},
	{18, 21, 30, 1.3, false},
	{19, 3, 15, 4.4, true},
	{19, 9, 45, 0.9, false},
	{19, 15, 45, 4.6, true},
	{19, 22, 15, 1.2, false},
	{20, 4, 0, 4.5, true},
	{20, 10, 30, 0.8, false},
	{20, 16, 30, 4.7, true},
	{20, 23, 0, 1.1, false},
	{21, 4, 45, 4.6, true},
	{21, 11, 15, 0.9, false},
	{21, 17, 15, 4.6, true},
	{21, 23, 45, 1.0, false},
	{22, 5, 30, 4.5, true},
	{22, 12, 0, 1.0, false},
	{22, 18, 0, 4.5, true},
	{23, 0, 30, 1.1, false},
	{23, 6, 15, 4.4, true},
	{23, 12, 45, 1.1, false},
	{23, 18, 45, 4.4, true},
	{24, 1, 15, 1.2, false},
	{24, 7, 0, 4.3, true},
	{24, 13, 30, 1.2, false},
	{24, 19, 30, 4.3, true},
	{25, 2, 0, 1.3, false},
	{25, 7, 45, 4.2, true},
	{25, 14, 15, 1.3, false},
	{25, 20, 15, 4.2, true},
	{26, 2, 45, 1.4, false},
	{26, 8, 30, 4.1, true},
	{26, 15, 0, 1.4, false},
	{26, 21, 0, 4.1, true},
	{27, 3, 30, 1.5, false},
	{27, 9, 15, 4.0, true},
	{27, 15, 45, 1.5, false},
	{27, 21, 45, 4.0, true},
	{28, 4, 15, 1.6, false},
	{28, 10, 0, 3.9, true},
	{28, 16, 30, 1.6, false},
	{28, 22, 30, 3.9, true},
	{29, 5, 0, 1.7, false},
	{29, 10, 45, 3.8, true},
	{29, 17, 15, 1.7, false},
	{29, 23, 15, 3.8, true},
	{30, 5, 45, 1.8, false},
	{30, 11, 30, 3.9, true},
	{30, 18, 0, 1.6, false},
	{31, 0, 0, 3.9, true},
	{31, 6, 30, 1.7, false},
	{31, 12, 15, 4.0, true},
	{31, 18, 45, 1.5, false},
}

// StaticSource serves bundled Point Atkinson predictions without network access
type StaticSource struct {
	loc *time.Location
}

// NewStaticSource returns a source whose event times are in loc
func NewStaticSource(loc *time.Location) *StaticSource {
	if loc == nil {
		loc = time.Local
	}
	return &StaticSource{loc: loc}
}

// GetTidePredictions returns bundled events between startDate and endDate,
// both days inclusive. Dates outside the bundled month yield no events.
func (s *StaticSource) GetTidePredictions(ctx context.Context, stationID string, startDate, endDate time.Time) (*models.TideData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)

	data := &models.TideData{
		StationID:   stationID,
		StationName: "Point Atkinson",
		UpdatedAt:   time.Now(),
	}
	for _, p := range pointAtkinsonJanuary2026 {
		t := time.Date(2026, time.January, p.day, p.hour, p.minute, 0, 0, s.loc)
		if t.Before(start) || !t.Before(end) {
			continue
		}
		typ := models.TideLow
		if p.high {
			typ = models.TideHigh
		}
		data.Events = append(data.Events, models.TideEvent{Time: t, Type: typ, Height: p.height})
	}
	return data, nil
}
