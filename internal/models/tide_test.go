package models

import (
	"testing"
	"time"
)

func TestTideData_GetEventsForDay(t *testing.T) {
	loc, _ := time.LoadLocation("America/Vancouver")

	tests := []struct {
		name   string
		events []TideEvent
		date   time.Time
		want   int // number of events expected
	}{
		{
			name: "typical day with 2 highs and 2 lows",
			events: []TideEvent{
				{Time: time.Date(2026, 1, 1, 2, 15, 0, 0, loc), Type: TideHigh, Height: 4.8},
				{Time: time.Date(2026, 1, 1, 8, 45, 0, 0, loc), Type: TideLow, Height: 1.2},
				{Time: time.Date(2026, 1, 1, 14, 30, 0, 0, loc), Type: TideHigh, Height: 4.5},
				{Time: time.Date(2026, 1, 1, 21, 0, 0, 0, loc), Type: TideLow, Height: 0.8},
				{Time: time.Date(2026, 1, 2, 3, 0, 0, 0, loc), Type: TideHigh, Height: 4.7},
			},
			date: time.Date(2026, 1, 1, 12, 0, 0, 0, loc),
			want: 4,
		},
		{
			name: "no events for given day",
			events: []TideEvent{
				{Time: time.Date(2026, 1, 5, 12, 0, 0, 0, loc), Type: TideHigh, Height: 4.1},
				{Time: time.Date(2026, 1, 7, 12, 0, 0, 0, loc), Type: TideHigh, Height: 4.2},
			},
			date: time.Date(2026, 1, 6, 0, 0, 0, 0, loc),
			want: 0,
		},
		{
			name: "event at midnight belongs to the day",
			events: []TideEvent{
				{Time: time.Date(2026, 1, 6, 0, 0, 0, 0, loc), Type: TideLow, Height: 1.2},
				{Time: time.Date(2026, 1, 6, 6, 0, 0, 0, loc), Type: TideHigh, Height: 4.3},
			},
			date: time.Date(2026, 1, 6, 9, 0, 0, 0, loc),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := &TideData{
				StationID: "07795",
				Events:    tt.events,
			}
			got := td.GetEventsForDay(tt.date)
			if len(got) != tt.want {
				t.Errorf("GetEventsForDay() returned %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestTideType_Constants(t *testing.T) {
	if TideHigh != "H" {
		t.Errorf("TideHigh = %v, want 'H'", TideHigh)
	}
	if TideLow != "L" {
		t.Errorf("TideLow = %v, want 'L'", TideLow)
	}
	if !(TideEvent{Type: TideHigh}).IsHigh() {
		t.Error("IsHigh() = false for a high tide")
	}
}
