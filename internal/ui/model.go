package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/scoring"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading     AppState = iota // Waiting for the first load
	StateBeachList                   // All beaches scored for the current hour
	StateBeachDetail                 // One beach with its best windows
	StatePlanTrip                    // Beaches × hours grid
	StateError                       // Nothing could be loaded
)

// Options configures a Model
type Options struct {
	Loader   Loader
	Beaches  []models.Beach
	Activity models.Activity
	Plan     bool // start in the plan view
	Location *time.Location
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	loader   Loader
	beaches  []models.Beach
	location *time.Location
	now      func() time.Time

	activity  models.Activity
	startPlan bool
	showChart bool
	showHelp  bool

	results    []*models.BeachConditions
	beachList  list.Model
	selected   int
	refreshing bool
	lastLoad   time.Time
	notice     string

	spinner spinner.Model
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return Model{
		state:     StateLoading,
		loader:    opts.Loader,
		beaches:   opts.Beaches,
		location:  loc,
		now:       time.Now,
		activity:  opts.Activity,
		startPlan: opts.Plan,
		showChart: true,
		beachList: createBeachList(nil, 0, 0),
		spinner:   s,
	}
}

// Init starts the first load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadConditions(m.loader, m.beaches, false), tick())
}

func (m Model) clock() time.Time {
	return m.now().In(m.location)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.beachList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case conditionsLoadedMsg:
		return m.applyResults(msg.results), nil

	case RefreshedMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("%s refresh failed; showing cached data", msg.Source)
			return m, nil
		}
		m.notice = ""
		m.refreshing = true
		return m, tea.Batch(m.spinner.Tick, loadConditions(m.loader, m.beaches, false))

	case tickMsg:
		m.rebuildList()
		return m, tick()

	case spinner.TickMsg:
		if m.state != StateLoading && !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyResults(results []*models.BeachConditions) Model {
	m.refreshing = false
	m.lastLoad = m.clock()

	loaded := 0
	for _, bc := range results {
		if bc != nil && bc.Weather != nil {
			loaded++
		}
	}
	if loaded == 0 {
		m.err = fmt.Errorf("could not load conditions for any beach")
		if len(results) > 0 && len(results[0].Errors) > 0 {
			m.err = fmt.Errorf("%w: %s", m.err, results[0].Errors[0])
		}
		m.state = StateError
		return m
	}

	m.err = nil
	m.results = results
	m.rebuildList()
	if m.state == StateLoading || m.state == StateError {
		m.state = StateBeachList
		if m.startPlan {
			m.state = StatePlanTrip
		}
	}
	return m
}

func (m *Model) rebuildList() {
	if len(m.results) == 0 {
		return
	}
	idx := m.beachList.Index()
	m.beachList.SetItems(beachItems(m.results, m.activity, m.clock()))
	m.beachList.Select(idx)
}

// handleKey handles keyboard input for every state
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The help overlay swallows every key except the ones that close it
	if m.showHelp {
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// Global keys
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		if m.state != StateLoading {
			m.showHelp = true
		}
		return m, nil
	case "r":
		if m.state == StateLoading || m.refreshing {
			return m, nil
		}
		m.refreshing = true
		if m.state == StateError {
			m.state = StateLoading
		}
		return m, tea.Batch(m.spinner.Tick, loadConditions(m.loader, m.beaches, true))
	case "1", "2", "3", "4", "5":
		all := models.AllActivities()
		m.activity = all[int(key[0]-'1')]
		m.rebuildList()
		return m, nil
	}

	switch m.state {
	case StateBeachList:
		switch key {
		case "esc":
			return m, tea.Quit
		case "enter":
			m.selected = m.beachList.Index()
			m.state = StateBeachDetail
			return m, nil
		case "p":
			m.state = StatePlanTrip
			return m, nil
		}
		var cmd tea.Cmd
		m.beachList, cmd = m.beachList.Update(msg)
		return m, cmd

	case StateBeachDetail:
		switch key {
		case "esc", "backspace":
			m.state = StateBeachList
		case "t":
			m.showChart = !m.showChart
		case "p":
			m.state = StatePlanTrip
		case "j", "down":
			m.selected = (m.selected + 1) % len(m.results)
			m.beachList.Select(m.selected)
		case "k", "up":
			m.selected = (m.selected - 1 + len(m.results)) % len(m.results)
			m.beachList.Select(m.selected)
		}
		return m, nil

	case StatePlanTrip:
		switch key {
		case "esc", "p":
			m.state = StateBeachList
		}
		return m, nil

	case StateError:
		if key == "esc" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.viewHelp()
	}

	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateBeachList:
		return m.viewBeachList()
	case StateBeachDetail:
		return m.viewDetail()
	case StatePlanTrip:
		return m.viewPlan()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewActivityTabs renders the activity selector with the current one highlighted
func (m Model) viewActivityTabs() string {
	var tabs []string
	for i, a := range models.AllActivities() {
		label := fmt.Sprintf("%d %s", i+1, a.Label())
		if a == m.activity {
			tabs = append(tabs, activeTitleStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader(title string) []string {
	status := m.clock().Format("Mon Jan 2 3:04 PM")
	if m.refreshing {
		status = m.spinner.View() + " refreshing…"
	}
	sections := []string{
		titleStyle.Render("🏖  "+title) + "  " + mutedStyle.Render(status),
		m.viewActivityTabs(),
	}
	if m.notice != "" {
		sections = append(sections, warningStyle.Render(m.notice))
	}
	return sections
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		titleStyle.Render("🏖  Beach Terminal"),
		"",
		fmt.Sprintf("%s Loading conditions for %d beaches...", m.spinner.View(), len(m.beaches)),
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("✗ Error"),
		"",
		errorMsg,
		"",
		helpStyle.Render("R: Retry • Esc/Q: Quit"),
	)
}

// viewBeachList renders every beach with its score for this hour
func (m Model) viewBeachList() string {
	sections := m.viewHeader("Beach Terminal")
	sections = append(sections,
		"",
		m.beachList.View(),
		renderBestNow(m.results, m.activity, m.clock()),
		helpStyle.Render("↑/↓ j/k: Navigate • Enter: Details • 1-5: Activity • P: Plan • R: Refresh • ?: Help • Q: Quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewDetail renders one beach
func (m Model) viewDetail() string {
	if m.selected < 0 || m.selected >= len(m.results) {
		return "No beach selected"
	}
	bc := m.results[m.selected]
	now := m.clock()

	sections := m.viewHeader(bc.Beach.Name)
	sections = append(sections,
		sectionHeaderStyle.Render("BEST WINDOW TODAY · "+strings.ToUpper(m.activity.Label())),
		sectionBoxStyle.Render(renderWindows(scoring.BuildWindows(m.activity, bc.Beach.ID, bc.Snapshots, now), m.activity)),
		sectionHeaderStyle.Render("WEATHER"),
		renderWeather(bc.Weather),
		sectionHeaderStyle.Render("HOURLY"),
		renderHourly(bc.Weather, now),
		sectionHeaderStyle.Render("WATER QUALITY"),
		renderWater(bc.WaterQuality, now),
		sectionHeaderStyle.Render("TIDES"),
		renderTides(bc, now, m.showChart),
		sectionHeaderStyle.Render("CROWD"),
		renderCrowd(now),
	)
	if stale := renderStaleness(bc); stale != "" {
		sections = append(sections, "", stale)
	}
	sections = append(sections,
		helpStyle.Render("Esc: Back • ↑/↓: Next beach • T: Tide chart • 1-5: Activity • P: Plan • ?: Help • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewPlan renders the trip planner grid
func (m Model) viewPlan() string {
	now := m.clock()
	sections := m.viewHeader("Plan Your Trip")
	sections = append(sections,
		"",
		renderPlanGrid(m.results, m.activity, now),
		renderBestNow(m.results, m.activity, now),
		helpStyle.Render("1-5: Activity • Esc/P: Back • R: Refresh • ?: Help • Q: Quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"Navigation", [][2]string{
		{"↑/k, ↓/j", "Move selection up/down"},
		{"Enter", "Open beach details"},
		{"Esc", "Go back / Close"},
		{"q", "Quit"},
	}},
	{"Activities", [][2]string{
		{"1", "Swimming"},
		{"2", "Sunbathing"},
		{"3", "Sailing"},
		{"4", "Sunset viewing"},
		{"5", "Peace & quiet"},
	}},
	{"Other", [][2]string{
		{"p", "Plan trip grid"},
		{"t", "Toggle tide chart"},
		{"r", "Refresh data"},
		{"?", "Toggle this help"},
	}},
}

// viewHelp renders the keyboard shortcut overlay
func (m Model) viewHelp() string {
	lines := []string{titleStyle.Render("Keyboard Shortcuts")}
	for _, sec := range helpSections {
		lines = append(lines, "", labelStyle.Render(sec.title))
		for _, k := range sec.keys {
			lines = append(lines, helpKeyStyle.Render(k[0])+valueStyle.Render(k[1]))
		}
	}
	lines = append(lines, "", mutedStyle.Render("Press Esc or ? to close"))
	return helpOverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
