package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/beach-terminal/internal/conditions"
	"github.com/ngmaloney/beach-terminal/internal/models"
)

// Loader provides conditions for every beach
type Loader interface {
	LoadAll(ctx context.Context, list []models.Beach, force bool) []*models.BeachConditions
}

// conditionsLoadedMsg is sent when a load of every beach completes
type conditionsLoadedMsg struct {
	results []*models.BeachConditions
}

// RefreshedMsg tells the model a background refresh finished so it can
// reload from the warm cache.
type RefreshedMsg struct {
	Source conditions.Source
	Err    error
}

// tickMsg keeps the clock and current-hour scores moving
type tickMsg time.Time

// loadConditions loads every beach in the background. force skips fresh
// cache entries.
func loadConditions(loader Loader, list []models.Beach, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		return conditionsLoadedMsg{results: loader.LoadAll(ctx, list, force)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
