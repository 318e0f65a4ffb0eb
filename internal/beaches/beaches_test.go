package beaches

import (
	"math"
	"testing"

	"github.com/ngmaloney/beach-terminal/internal/tides"
)

func TestAll(t *testing.T) {
	got := All()
	if len(got) != 12 {
		t.Fatalf("len(All()) = %d, want 12", len(got))
	}

	seen := map[string]bool{}
	for _, b := range got {
		if seen[b.ID] {
			t.Errorf("duplicate beach id %q", b.ID)
		}
		seen[b.ID] = true
		if b.TideStationID != tides.PointAtkinsonID {
			t.Errorf("%s TideStationID = %q, want %q", b.ID, b.TideStationID, tides.PointAtkinsonID)
		}
		if !b.HasWaterQuality() {
			t.Errorf("%s should be sampled for water quality", b.ID)
		}
	}

	// Callers get a copy
	got[0].Name = "changed"
	if All()[0].Name != "Kitsilano Beach" {
		t.Error("All() exposed the underlying table")
	}
}

func TestByID(t *testing.T) {
	b, err := ByID("jericho")
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if b.Name != "Jericho Beach" {
		t.Errorf("Name = %s, want Jericho Beach", b.Name)
	}

	if _, err := ByID("waikiki"); err == nil {
		t.Error("ByID(waikiki) should fail")
	}
}

func TestNearest(t *testing.T) {
	// Just off Kits pool
	ranked := Nearest(49.2750, -123.1550)
	if ranked[0].Beach.ID != "kitsilano" {
		t.Errorf("nearest = %s, want kitsilano", ranked[0].Beach.ID)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Distance < ranked[i-1].Distance {
			t.Fatalf("results not sorted at %d", i)
		}
	}
}

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		want       float64
		tolerance  float64
	}{
		{"same point", 49.27, -123.15, 49.27, -123.15, 0, 1e-9},
		{"kits to wreck", 49.2743, -123.1544, 49.2621, -123.2617, 7.9, 0.2},
		{"one degree latitude", 0, 0, 1, 0, 111.19, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineDistance() = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}
