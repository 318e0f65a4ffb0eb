package scoring

import (
	"sort"
	"strings"

	"github.com/ngmaloney/beach-terminal/internal/crowd"
	"github.com/ngmaloney/beach-terminal/internal/models"
)

type factorKind int

const (
	factorTemperature factorKind = iota
	factorWater
	factorWind
	factorUV
	factorTide
	factorCrowd
	factorTime
)

type weightedFactor struct {
	kind   factorKind
	score  float64
	weight float64
}

// dominantFactors returns up to n factors with the largest weighted
// contribution, ignoring factors the profile does not weigh.
func dominantFactors(p ActivityProfile, f ScoreFactors, n int) []factorKind {
	all := []weightedFactor{
		{factorTemperature, f.Temperature, p.Weights.Temperature},
		{factorWater, f.WaterQuality, p.Weights.WaterQuality},
		{factorWind, f.Wind, p.Weights.Wind},
		{factorUV, f.UV, p.Weights.UV},
		{factorTide, f.Tide, p.Weights.Tide},
		{factorCrowd, f.Crowd, p.Weights.Crowd},
	}
	if p.Time != TimeNone {
		all = append(all, weightedFactor{factorTime, f.TimeOfDay, timeWeight})
	}

	var contribs []weightedFactor
	for _, c := range all {
		if c.weight > 0 {
			contribs = append(contribs, c)
		}
	}
	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].score*contribs[i].weight > contribs[j].score*contribs[j].weight
	})

	if len(contribs) > n {
		contribs = contribs[:n]
	}
	kinds := make([]factorKind, len(contribs))
	for i, c := range contribs {
		kinds[i] = c.kind
	}
	return kinds
}

// FactorPhrases describes the conditions that drove a slot's score
func FactorPhrases(p ActivityProfile, slot TimeSlotScore, snap models.ConditionSnapshot) []string {
	if slot.Blocked {
		return []string{slot.BlockReason}
	}
	kinds := dominantFactors(p, slot.Factors, 3)
	phrases := make([]string, 0, len(kinds))
	for _, k := range kinds {
		phrases = append(phrases, phrase(k, p, snap))
	}
	return phrases
}

// Reason joins the factor phrases into one line
func Reason(phrases []string) string {
	return strings.Join(phrases, ", ")
}

func phrase(k factorKind, p ActivityProfile, snap models.ConditionSnapshot) string {
	switch k {
	case factorTemperature:
		switch {
		case snap.Temperature < p.Temp.Min:
			return "cool"
		case snap.Temperature > p.Temp.Max:
			return "hot"
		case snap.Temperature >= 22:
			return "warm"
		}
		return "mild"
	case factorWater:
		switch snap.Water {
		case models.WaterSafe:
			return "safe water"
		case models.WaterAdvisory:
			return "water advisory"
		case models.WaterClosed:
			return "beach closed"
		}
		return "water quality unknown"
	case factorWind:
		switch {
		case snap.WindSpeed > p.Wind.Max:
			return "windy"
		case p.Wind.Min > 0 && snap.WindSpeed >= p.Wind.Min:
			return "good wind"
		case snap.WindSpeed < 5:
			return "calm winds"
		}
		return "light winds"
	case factorUV:
		return uvCategory(snap.UV) + " UV"
	case factorTide:
		if snap.MaxTideHeight <= 0 {
			return "tide unknown"
		}
		n := snap.TideHeight / snap.MaxTideHeight
		switch {
		case n < 0.33:
			return "low tide"
		case n < 0.66:
			return "mid tide"
		}
		return "high tide"
	case factorCrowd:
		switch crowd.LevelOf(snap.Crowd) {
		case crowd.Quiet:
			return "quiet"
		case crowd.Moderate:
			return "moderate crowds"
		}
		return "busy"
	case factorTime:
		if p.Time == TimeSunset {
			return "near sunset"
		}
		return "early morning"
	}
	return ""
}

func uvCategory(uv float64) string {
	switch {
	case uv < 3:
		return "low"
	case uv < 6:
		return "moderate"
	case uv < 8:
		return "high"
	case uv < 11:
		return "very high"
	}
	return "extreme"
}
