package scoring

import (
	"sort"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

// BestNowThreshold is the minimum score for a "go now" recommendation.
const BestNowThreshold = 70

// BeachRanking is one beach's score for the current hour
type BeachRanking struct {
	BeachID string        `json:"beach_id"`
	Slot    TimeSlotScore `json:"slot"`
	Reason  string        `json:"reason"`
}

// RankBeaches scores every beach for the hour containing now, best first.
// Beaches without a snapshot for that hour are left out.
func RankBeaches(a models.Activity, snapshotsByBeach map[string][]models.ConditionSnapshot, now time.Time) []BeachRanking {
	p := Profile(a)

	var out []BeachRanking
	for id, snaps := range snapshotsByBeach {
		snap, ok := snapshotsForDay(snaps, now)[now.Hour()]
		if !ok {
			continue
		}
		slot := ScoreTimeSlot(p, snap)
		slot.BeachID = id
		out = append(out, BeachRanking{
			BeachID: id,
			Slot:    slot,
			Reason:  Reason(FactorPhrases(p, slot, snap)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot.Score != out[j].Slot.Score {
			return out[i].Slot.Score > out[j].Slot.Score
		}
		return out[i].BeachID < out[j].BeachID
	})
	return out
}

// BestNow returns the top-ranked beach if it clears BestNowThreshold
func BestNow(a models.Activity, snapshotsByBeach map[string][]models.ConditionSnapshot, now time.Time) (BeachRanking, bool) {
	ranked := RankBeaches(a, snapshotsByBeach, now)
	if len(ranked) == 0 || ranked[0].Slot.Score < BestNowThreshold {
		return BeachRanking{}, false
	}
	return ranked[0], true
}
