package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/beach-terminal/internal/models"
)

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#00BFFF") // Deep sky blue
	colorSecondary = lipgloss.Color("#87CEEB") // Sky blue
	colorDanger    = lipgloss.Color("#FF6B6B") // Red
	colorWarning   = lipgloss.Color("#FFD93D") // Yellow
	colorSuccess   = lipgloss.Color("#6BCF7F") // Green
	colorMuted     = lipgloss.Color("#6C757D") // Gray
	colorBorder    = lipgloss.Color("#4A90E2") // Border blue
	colorSand      = lipgloss.Color("#F4D58D")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	activeTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Padding(0, 1).
				MarginTop(1)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	bestNowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSand).
			Foreground(colorSand).
			Padding(0, 1)

	tideChartStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Width(12)

	helpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)
)

// scoreStyle colors a 0..100 score
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	case score >= 40:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorDanger)
	}
}

// factorBarStyle colors a 0..1 factor score
func factorBarStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.8:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case score >= 0.5:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorDanger)
	}
}

// waterStyle colors a water quality status
func waterStyle(status models.WaterStatus) lipgloss.Style {
	switch status {
	case models.WaterSafe:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case models.WaterAdvisory:
		return lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	case models.WaterClosed:
		return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	}
	return mutedStyle
}
