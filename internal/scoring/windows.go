package scoring

import (
	"sort"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

const (
	// WindowFloor is the score an hour must exceed to join a window.
	WindowFloor = 40
	// FirstHour and LastHour bound the hours that are ever recommended.
	FirstHour = 6
	LastHour  = 21

	maxWindows = 3
)

// TimeWindow is a run of adjacent hours worth recommending
type TimeWindow struct {
	StartHour int          `json:"start_hour"`
	EndHour   int          `json:"end_hour"` // exclusive
	PeakHour  int          `json:"peak_hour"`
	PeakScore int          `json:"peak_score"`
	Scores    ScoreFactors `json:"scores"` // factor scores at the peak hour
	Factors   []string     `json:"factors"`
	Reason    string       `json:"reason"`
}

// Hours returns how many hours the window spans
func (w TimeWindow) Hours() int {
	return w.EndHour - w.StartHour
}

// WindowResult is the ranked windows for one beach and activity. When
// Windows is empty, AllPassed tells the caller whether the day is over or
// nothing was suitable.
type WindowResult struct {
	Windows   []TimeWindow `json:"windows"`
	AllPassed bool         `json:"all_passed"`
}

// Message returns the text to show when there are no windows
func (r WindowResult) Message() string {
	if len(r.Windows) > 0 {
		return ""
	}
	if r.AllPassed {
		return "Best times have passed for today"
	}
	return "No suitable time windows found"
}

// ScoreHours scores the snapshots that fall on day's date within from..to
// (inclusive), in hour order. Hours without a snapshot are omitted.
func ScoreHours(a models.Activity, snapshots []models.ConditionSnapshot, day time.Time, from, to int) []TimeSlotScore {
	p := Profile(a)
	byHour := snapshotsForDay(snapshots, day)

	var out []TimeSlotScore
	for h := from; h <= to; h++ {
		snap, ok := byHour[h]
		if !ok {
			continue
		}
		out = append(out, ScoreTimeSlot(p, snap))
	}
	return out
}

// BuildWindows scores the rest of today for an activity and groups adjacent
// hours above WindowFloor into at most three windows, best first. The
// current hour is included.
func BuildWindows(a models.Activity, beachID string, snapshots []models.ConditionSnapshot, now time.Time) WindowResult {
	result := WindowResult{AllPassed: now.Hour() >= LastHour}

	start := now.Hour()
	if start < FirstHour {
		start = FirstHour
	}
	if start > LastHour {
		return result
	}

	p := Profile(a)
	var mine []models.ConditionSnapshot
	for _, s := range snapshots {
		if beachID == "" || s.BeachID == "" || s.BeachID == beachID {
			mine = append(mine, s)
		}
	}
	byHour := snapshotsForDay(mine, now)

	var (
		windows []TimeWindow
		current *TimeWindow
	)
	closeWindow := func() {
		if current != nil {
			windows = append(windows, *current)
			current = nil
		}
	}

	for h := start; h <= LastHour; h++ {
		snap, ok := byHour[h]
		if !ok {
			closeWindow()
			continue
		}
		slot := ScoreTimeSlot(p, snap)
		if slot.Blocked || slot.Score <= WindowFloor {
			closeWindow()
			continue
		}

		if current == nil {
			current = &TimeWindow{StartHour: h, PeakHour: h, PeakScore: -1}
		}
		current.EndHour = h + 1
		if slot.Score > current.PeakScore {
			current.PeakHour = h
			current.PeakScore = slot.Score
			current.Scores = slot.Factors
			current.Factors = FactorPhrases(p, slot, snap)
			current.Reason = Reason(current.Factors)
		}
	}
	closeWindow()

	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].PeakScore != windows[j].PeakScore {
			return windows[i].PeakScore > windows[j].PeakScore
		}
		return windows[i].StartHour < windows[j].StartHour
	})
	if len(windows) > maxWindows {
		windows = windows[:maxWindows]
	}

	result.Windows = windows
	if len(windows) > 0 {
		result.AllPassed = false
	}
	return result
}

func snapshotsForDay(snapshots []models.ConditionSnapshot, day time.Time) map[int]models.ConditionSnapshot {
	loc := day.Location()
	y, m, d := day.Date()

	byHour := make(map[int]models.ConditionSnapshot, len(snapshots))
	for _, s := range snapshots {
		t := s.Time.In(loc)
		sy, sm, sd := t.Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		if _, dup := byHour[t.Hour()]; !dup {
			byHour[t.Hour()] = s
		}
	}
	return byHour
}
