package models

import "time"

// WaterStatus is the swimming advisory state for a beach
type WaterStatus string

const (
	WaterSafe     WaterStatus = "safe"
	WaterAdvisory WaterStatus = "advisory"
	WaterClosed   WaterStatus = "closed"
	WaterUnknown  WaterStatus = "unknown"
)

// Samples older than this are shown but no longer trusted for scoring.
const waterStaleAfter = 2 * 24 * time.Hour

// WaterQuality is the latest E. coli sample for a beach
type WaterQuality struct {
	Status         WaterStatus `json:"status"`
	EColi          *int        `json:"ecoli,omitempty"` // CFU/100mL
	SampleDate     time.Time   `json:"sample_date"`
	AdvisoryReason string      `json:"advisory_reason,omitempty"`
	FetchedAt      time.Time   `json:"fetched_at"`
}

// IsStale reports whether the sample is more than two days old at now
func (w *WaterQuality) IsStale(now time.Time) bool {
	if w.SampleDate.IsZero() {
		return true
	}
	return now.Sub(w.SampleDate) > waterStaleAfter
}

// EffectiveStatus is the status to score with: stale samples count as unknown
func (w *WaterQuality) EffectiveStatus(now time.Time) WaterStatus {
	if w == nil || w.IsStale(now) {
		return WaterUnknown
	}
	return w.Status
}
