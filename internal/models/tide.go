package models

import "time"

// TideType represents whether a tide is high or low
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// TideEvent represents a single high or low tide occurrence
type TideEvent struct {
	Time   time.Time `json:"time"`
	Type   TideType  `json:"type"`
	Height float64   `json:"height"` // metres above chart datum
}

// IsHigh reports whether the event is a high tide
func (e TideEvent) IsHigh() bool {
	return e.Type == TideHigh
}

// TideState describes the direction of the tide at a moment
type TideState string

const (
	TideRising  TideState = "rising"
	TideFalling TideState = "falling"
	TideAtHigh  TideState = "high"
	TideAtLow   TideState = "low"
)

// TideData contains tide predictions for a station
type TideData struct {
	StationID   string      `json:"station_id"`
	StationName string      `json:"station_name"`
	Events      []TideEvent `json:"events"` // Ordered by time
	UpdatedAt   time.Time   `json:"updated_at"`
}

// GetEventsForDay returns tide events falling on the calendar day of date,
// in date's location. An event exactly at midnight belongs to that day.
func (td *TideData) GetEventsForDay(date time.Time) []TideEvent {
	var events []TideEvent
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	for _, event := range td.Events {
		if !event.Time.Before(startOfDay) && event.Time.Before(endOfDay) {
			events = append(events, event)
		}
	}
	return events
}
