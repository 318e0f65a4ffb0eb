package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/scoring"
	"github.com/ngmaloney/beach-terminal/internal/tides"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders heights as block characters scaled to 0..max
func sparkline(heights []float64, max float64) string {
	if max <= 0 {
		return ""
	}
	var b strings.Builder
	for _, h := range heights {
		idx := int(h / max * float64(len(sparkBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// renderTides renders the current tide state, the next extremes and,
// when enabled, an hourly chart for the day.
func renderTides(bc *models.BeachConditions, now time.Time, chart bool) string {
	if bc.Tides == nil || len(bc.Tides.Events) == 0 {
		return mutedStyle.Render("No tide data available")
	}

	var lines []string
	if bc.TideState != "" {
		lines = append(lines, fmt.Sprintf("%s %s",
			valueStyle.Render(fmt.Sprintf("%.1f m", bc.TideHeight)),
			labelStyle.Render(string(bc.TideState))))
	}

	high, low := tides.NextExtremes(bc.Tides.Events, now)
	for _, e := range []*models.TideEvent{high, low} {
		if e == nil {
			continue
		}
		kind := "Low"
		if e.IsHigh() {
			kind = "High"
		}
		lines = append(lines, fmt.Sprintf("  Next %-4s %s  %.1f m", kind, e.Time.Format("3:04 PM"), e.Height))
	}

	if chart {
		heights, err := tides.HourlyHeights(bc.Tides.Events, now, scoring.FirstHour, scoring.LastHour)
		if err == nil {
			max := tides.MaxHeight(bc.Tides.StationID)
			lines = append(lines, "",
				tideChartStyle.Render(sparkline(heights, max)),
				mutedStyle.Render(fmt.Sprintf("%-8s%8s", "6am", "9pm")))
		}
	}
	return strings.Join(lines, "\n")
}
