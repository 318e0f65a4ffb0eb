package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/scoring"
)

const planNameWidth = 20

// renderPlanGrid renders beaches × hours for one activity. Past hours and
// missing data show as dots; blocked hours as crosses.
func renderPlanGrid(results []*models.BeachConditions, activity models.Activity, now time.Time) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", planNameWidth))
	for h := scoring.FirstHour; h <= scoring.LastHour; h++ {
		label := fmt.Sprintf("%4d", h)
		if h == now.Hour() {
			label = activeTitleStyle.UnsetPadding().Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	for _, bc := range results {
		name := bc.Beach.Name
		if len(name) > planNameWidth-1 {
			name = name[:planNameWidth-2] + "…"
		}
		b.WriteString(lipgloss.NewStyle().Width(planNameWidth).Render(name))

		slots := scoring.ScoreHours(activity, bc.Snapshots, now, scoring.FirstHour, scoring.LastHour)
		byHour := make(map[int]scoring.TimeSlotScore, len(slots))
		for _, s := range slots {
			byHour[s.Time.Hour()] = s
		}
		for h := scoring.FirstHour; h <= scoring.LastHour; h++ {
			s, ok := byHour[h]
			switch {
			case !ok || h < now.Hour():
				b.WriteString(mutedStyle.Render(fmt.Sprintf("%4s", "·")))
			case s.Blocked:
				b.WriteString(errorStyle.Render(fmt.Sprintf("%4s", "✗")))
			default:
				b.WriteString(scoreStyle(s.Score).Render(fmt.Sprintf("%4d", s.Score)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderBestNow renders the "go now" recommendation for activity
func renderBestNow(results []*models.BeachConditions, activity models.Activity, now time.Time) string {
	byBeach := make(map[string][]models.ConditionSnapshot, len(results))
	names := make(map[string]string, len(results))
	for _, bc := range results {
		byBeach[bc.Beach.ID] = bc.Snapshots
		names[bc.Beach.ID] = bc.Beach.Name
	}

	best, ok := scoring.BestNow(activity, byBeach, now)
	if !ok {
		return mutedStyle.Render(fmt.Sprintf("No beach scores %d+ for %s right now", scoring.BestNowThreshold, activity.Label()))
	}
	return bestNowStyle.Render(fmt.Sprintf("Best now: %s · %d · %s", names[best.BeachID], best.Slot.Score, best.Reason))
}
