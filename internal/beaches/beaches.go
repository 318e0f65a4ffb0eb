// Package beaches holds the fixed set of Vancouver beaches the terminal
// knows about.
package beaches

import (
	"fmt"
	"math"
	"sort"

	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/tides"
)

var all = []models.Beach{
	{ID: "kitsilano", Name: "Kitsilano Beach", Latitude: 49.2743, Longitude: -123.1544, WaterQualityID: "kitsilano-beach"},
	{ID: "english-bay", Name: "English Bay Beach", Latitude: 49.2863, Longitude: -123.1432, WaterQualityID: "english-bay"},
	{ID: "jericho", Name: "Jericho Beach", Latitude: 49.2726, Longitude: -123.1967, WaterQualityID: "jericho-beach"},
	{ID: "spanish-banks-east", Name: "Spanish Banks East", Latitude: 49.2756, Longitude: -123.2089, WaterQualityID: "spanish-banks-east"},
	{ID: "spanish-banks-west", Name: "Spanish Banks West", Latitude: 49.2769, Longitude: -123.2244, WaterQualityID: "spanish-banks-west"},
	{ID: "locarno", Name: "Locarno Beach", Latitude: 49.2768, Longitude: -123.2167, WaterQualityID: "locarno-beach"},
	{ID: "wreck", Name: "Wreck Beach", Latitude: 49.2621, Longitude: -123.2617, WaterQualityID: "wreck-beach"},
	{ID: "second", Name: "Second Beach", Latitude: 49.2912, Longitude: -123.1513, WaterQualityID: "second-beach"},
	{ID: "third", Name: "Third Beach", Latitude: 49.2989, Longitude: -123.1588, WaterQualityID: "third-beach"},
	{ID: "sunset", Name: "Sunset Beach", Latitude: 49.2799, Longitude: -123.1339, WaterQualityID: "sunset-beach"},
	{ID: "trout-lake", Name: "Trout Lake Beach", Latitude: 49.2555, Longitude: -123.0644, WaterQualityID: "trout-lake"},
	{ID: "new-brighton", Name: "New Brighton Beach", Latitude: 49.2930, Longitude: -123.0365, WaterQualityID: "new-brighton"},
}

func init() {
	for i := range all {
		all[i].TideStationID = tides.PointAtkinsonID
	}
}

// All returns a copy of every beach in display order
func All() []models.Beach {
	out := make([]models.Beach, len(all))
	copy(out, all)
	return out
}

// ByID looks up a beach by its slug
func ByID(id string) (models.Beach, error) {
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Beach{}, fmt.Errorf("beach %q not found", id)
}

// Ranked is a beach with its distance from a point
type Ranked struct {
	Beach    models.Beach `json:"beach"`
	Distance float64      `json:"distance_km"`
}

// Nearest returns the beaches ordered by distance from lat/lon
func Nearest(lat, lon float64) []Ranked {
	ranked := make([]Ranked, 0, len(all))
	for _, b := range all {
		ranked = append(ranked, Ranked{
			Beach:    b,
			Distance: HaversineDistance(lat, lon, b.Latitude, b.Longitude),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked
}

// HaversineDistance calculates distance in kilometres between two lat/lon points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
