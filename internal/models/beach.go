package models

// Beach is a fixed swimming location with its data-source identifiers
type Beach struct {
	ID             string  `json:"id"`               // Slug, e.g. "kitsilano"
	Name           string  `json:"name"`             // Display name, also the water quality dataset key
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	WaterQualityID string  `json:"water_quality_id"` // Empty when the beach is not sampled
	TideStationID  string  `json:"tide_station_id"`
}

// HasWaterQuality reports whether the beach is part of the sampling program
func (b Beach) HasWaterQuality() bool {
	return b.WaterQualityID != ""
}
