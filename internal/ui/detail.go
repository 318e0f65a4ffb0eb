package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ngmaloney/beach-terminal/internal/crowd"
	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/scoring"
)

var medals = []string{"🥇", "🥈", "🥉"}

// renderWeather renders current conditions and sun times
func renderWeather(w *models.Weather) string {
	if w == nil {
		return mutedStyle.Render("No weather data available")
	}

	lines := []string{
		fmt.Sprintf("%s %s", w.Condition.Icon(), valueStyle.Bold(true).Render(strings.ReplaceAll(string(w.Condition), "_", " "))),
		fmt.Sprintf("%s %s (feels %.0f°C)", labelStyle.Render("Temp:"), valueStyle.Render(fmt.Sprintf("%.0f°C", w.Temperature)), w.FeelsLike),
		fmt.Sprintf("%s %s", labelStyle.Render("Wind:"), valueStyle.Render(fmt.Sprintf("%.0f km/h", w.WindSpeed))),
		fmt.Sprintf("%s %s (max %.0f)", labelStyle.Render("UV:"), valueStyle.Render(fmt.Sprintf("%.0f", w.UV)), w.UVMax),
	}
	if w.Humidity > 0 {
		lines = append(lines, fmt.Sprintf("%s %d%%", labelStyle.Render("Humidity:"), w.Humidity))
	}
	if !w.Sunrise.IsZero() && !w.Sunset.IsZero() {
		lines = append(lines, fmt.Sprintf("%s %s  %s %s",
			labelStyle.Render("Sunrise:"), w.Sunrise.Format("3:04 PM"),
			labelStyle.Render("Sunset:"), w.Sunset.Format("3:04 PM")))
	}
	return strings.Join(lines, "\n")
}

// renderWater renders the water quality sample
func renderWater(wq *models.WaterQuality, now time.Time) string {
	status := wq.EffectiveStatus(now)
	line := waterStyle(status).Render(strings.ToUpper(string(status)))
	if wq == nil {
		return line + " " + mutedStyle.Render("(no sample)")
	}

	var lines []string
	if wq.EColi != nil {
		line += fmt.Sprintf("  E. coli %d CFU/100mL", *wq.EColi)
	}
	lines = append(lines, line)
	if !wq.SampleDate.IsZero() {
		sampled := "sampled " + wq.SampleDate.Format("Jan 2")
		if wq.IsStale(now) {
			sampled += " (too old to trust)"
		}
		lines = append(lines, mutedStyle.Render(sampled))
	}
	if wq.AdvisoryReason != "" {
		lines = append(lines, warningStyle.Render(wq.AdvisoryReason))
	}
	return strings.Join(lines, "\n")
}

// renderWindows renders the top windows with medals, or why there are none.
// Each window is followed by bars for the factors that matter most to a.
func renderWindows(result scoring.WindowResult, a models.Activity) string {
	if len(result.Windows) == 0 {
		return mutedStyle.Render(result.Message())
	}

	lines := make([]string, 0, 2*len(result.Windows))
	for i, w := range result.Windows {
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
			medals[i],
			valueStyle.Render(formatWindowRange(w)),
			scoreStyle(w.PeakScore).Render(fmt.Sprintf("%3d", w.PeakScore)),
			mutedStyle.Render(w.Reason)))
		lines = append(lines, "   "+renderFactorBars(w.Scores, a))
	}
	return strings.Join(lines, "\n")
}

type factorBar struct {
	label string
	score float64
}

// keyFactors picks the factors shown as bars for an activity. Temperature
// always leads.
func keyFactors(f scoring.ScoreFactors, a models.Activity) []factorBar {
	bars := []factorBar{{"T:", f.Temperature}}
	switch a {
	case models.Swimming:
		bars = append(bars, factorBar{"W:", f.WaterQuality}, factorBar{"Ti:", f.Tide})
	case models.Sailing:
		bars = append(bars, factorBar{"Wi:", f.Wind}, factorBar{"Ti:", f.Tide})
	case models.Sunbathing:
		bars = append(bars, factorBar{"UV:", f.UV}, factorBar{"Wi:", f.Wind})
	case models.Sunset:
		bars = append(bars, factorBar{"Hr:", f.TimeOfDay})
	case models.Peace:
		bars = append(bars, factorBar{"Cr:", f.Crowd}, factorBar{"Wi:", f.Wind})
	}
	return bars
}

// renderFactorBars renders each key factor as a five segment ▰▱ bar
func renderFactorBars(f scoring.ScoreFactors, a models.Activity) string {
	parts := make([]string, 0, 3)
	for _, b := range keyFactors(f, a) {
		parts = append(parts, labelStyle.Render(b.label)+factorBarStyle(b.score).Render(miniBar(b.score)))
	}
	return strings.Join(parts, " ")
}

// miniBar renders a 0..1 score as five segments
func miniBar(score float64) string {
	filled := int(math.Round(math.Max(0, math.Min(1, score)) * 5))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", 5-filled)
}

// renderHourly lists the forecast from now's hour through the last
// recommended hour
func renderHourly(w *models.Weather, now time.Time) string {
	if w == nil || len(w.Hourly) == 0 {
		return mutedStyle.Render("No hourly forecast available")
	}

	var lines []string
	for _, h := range w.Hourly {
		t := h.Time.In(now.Location())
		if !sameDay(t, now) || t.Hour() < now.Hour() || t.Hour() > scoring.LastHour {
			continue
		}
		line := fmt.Sprintf("%-5s %5s  %s  %-10s %s",
			formatHour(t.Hour()),
			fmt.Sprintf("%.0f°C", h.Temperature),
			h.Condition.Icon(),
			fmt.Sprintf("%.0f km/h", h.WindSpeed),
			fmt.Sprintf("UV %.0f", h.UV))
		if h.PrecipitationChance > 0 {
			line += fmt.Sprintf("  %d%% rain", h.PrecipitationChance)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return mutedStyle.Render("No more forecasts for today")
	}
	return strings.Join(lines, "\n")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// renderCrowd renders the crowd estimate for now
func renderCrowd(now time.Time) string {
	v := crowd.EstimateAt(now)
	return fmt.Sprintf("%s (%.0f%%)", crowd.LevelOf(v), v*100)
}

// renderStaleness lists sources served from cache, and failed sources
func renderStaleness(bc *models.BeachConditions) string {
	var parts []string
	for _, s := range []struct {
		name string
		age  time.Duration
	}{
		{"weather", bc.Age.Weather},
		{"water", bc.Age.WaterQuality},
		{"tides", bc.Age.Tides},
	} {
		if s.age > 0 {
			parts = append(parts, fmt.Sprintf("%s %s old", s.name, formatAge(s.age)))
		}
	}

	var lines []string
	if len(parts) > 0 {
		lines = append(lines, warningStyle.Render("⚠ cached: "+strings.Join(parts, ", ")))
	}
	for _, e := range bc.Errors {
		lines = append(lines, errorStyle.Render("✗ "+e))
	}
	return strings.Join(lines, "\n")
}

// formatWindowRange renders "10am-1pm"; EndHour is exclusive
func formatWindowRange(w scoring.TimeWindow) string {
	return fmt.Sprintf("%s-%s", formatHour(w.StartHour), formatHour(w.EndHour))
}

// formatHour renders a 24-hour clock hour as 6am, 12pm, 9pm
func formatHour(h int) string {
	h = ((h % 24) + 24) % 24
	switch {
	case h == 0:
		return "12am"
	case h < 12:
		return fmt.Sprintf("%dam", h)
	case h == 12:
		return "12pm"
	}
	return fmt.Sprintf("%dpm", h-12)
}

// formatAge renders a cache age coarsely
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}
