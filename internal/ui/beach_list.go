package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/scoring"
)

// beachItem wraps a beach and its current-hour score for use in a list
type beachItem struct {
	beach models.Beach
	slot  *scoring.TimeSlotScore
	water models.WaterStatus
	temp  *float64
}

// FilterValue implements list.Item
func (b beachItem) FilterValue() string {
	return b.beach.Name
}

// Title implements list.DefaultItem
func (b beachItem) Title() string {
	if b.slot == nil {
		return fmt.Sprintf("%s  %s", b.beach.Name, mutedStyle.Render("--"))
	}
	if b.slot.Blocked {
		return fmt.Sprintf("%s  %s", b.beach.Name, errorStyle.Render("✗ "+b.slot.BlockReason))
	}
	return fmt.Sprintf("%s  %s", b.beach.Name, scoreStyle(b.slot.Score).Render(fmt.Sprintf("%d", b.slot.Score)))
}

// Description implements list.DefaultItem
func (b beachItem) Description() string {
	temp := "--°C"
	if b.temp != nil {
		temp = fmt.Sprintf("%.0f°C", *b.temp)
	}
	return fmt.Sprintf("%s · water %s", temp, b.water)
}

// beachItems builds list items scored for activity at now
func beachItems(results []*models.BeachConditions, activity models.Activity, now time.Time) []list.Item {
	items := make([]list.Item, len(results))
	for i, bc := range results {
		item := beachItem{beach: bc.Beach, water: bc.WaterQuality.EffectiveStatus(now)}
		if bc.Weather != nil {
			t := bc.Weather.Temperature
			item.temp = &t
		}
		if slots := scoring.ScoreHours(activity, bc.Snapshots, now, now.Hour(), now.Hour()); len(slots) == 1 {
			item.slot = &slots[0]
		}
		items[i] = item
	}
	return items
}

// createBeachList creates a list.Model that wraps around at either end
func createBeachList(items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Vancouver Beaches"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.InfiniteScrolling = true
	l.DisableQuitKeybindings()

	return l
}
