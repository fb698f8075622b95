package models

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/player"
	"github.com/VoidMesh/terrain/internal/terrain"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	MapView
	OverviewView
	JournalView

	viewCount = 4
)

// App is the main application model
type App struct {
	service *terrain.Service
	tracker *player.Tracker
	journal *db.Journal

	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	menu     MenuModel
	explorer MapExplorerModel
	overview OverviewModel
	history  JournalModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance
func NewApp(service *terrain.Service, tracker *player.Tracker, journal *db.Journal, startView string) *App {
	app := &App{
		service:  service,
		tracker:  tracker,
		journal:  journal,
		menu:     NewMenuModel(service, journal),
		explorer: NewMapExplorerModel(service, tracker),
		overview: NewOverviewModel(service),
		history:  NewJournalModel(journal),
	}

	switch startView {
	case "map":
		app.currentView = MapView
	case "overview":
		app.currentView = OverviewView
	case "journal":
		app.currentView = JournalView
	default:
		app.currentView = MenuView
	}

	return app
}

// Init initializes the application. The streaming ticker runs regardless of the active view.
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing debug tool")
	return tea.Batch(m.explorer.tickCmd(), m.getCurrentViewModel().Init())
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.menu.SetSize(msg.Width, msg.Height)
		m.explorer.SetSize(msg.Width, msg.Height)
		m.overview.SetSize(msg.Width, msg.Height)
		m.history.SetSize(msg.Width, msg.Height)
		return m, nil

	case streamTickMsg:
		// Streaming advances even while another view is shown.
		newModel, cmd := m.explorer.Update(msg)
		m.explorer = newModel.(MapExplorerModel)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			m.currentView = MenuView
			return m, m.menu.Init()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			m.currentView = ViewType((int(m.currentView) + 1) % viewCount)
			return m, m.getCurrentViewModel().Init()
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.getCurrentViewModel().Init()
	}

	if m.showHelp {
		return m, nil
	}

	// Route message to current view
	switch m.currentView {
	case MenuView:
		newModel, cmd := m.menu.Update(msg)
		m.menu = newModel.(MenuModel)
		return m, cmd
	case MapView:
		newModel, cmd := m.explorer.Update(msg)
		m.explorer = newModel.(MapExplorerModel)
		return m, cmd
	case OverviewView:
		newModel, cmd := m.overview.Update(msg)
		m.overview = newModel.(OverviewModel)
		return m, cmd
	case JournalView:
		newModel, cmd := m.history.Update(msg)
		m.history = newModel.(JournalModel)
		return m, cmd
	}

	return m, nil
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case MapView:
		return m.explorer.View()
	case OverviewView:
		return m.overview.View()
	case JournalView:
		return m.history.View()
	}

	return "Unknown view"
}

func (m *App) getCurrentViewModel() tea.Model {
	switch m.currentView {
	case MapView:
		return m.explorer
	case OverviewView:
		return m.overview
	case JournalView:
		return m.history
	}
	return m.menu
}

func (m *App) renderHelp() string {
	return `
+- VoidMesh Terrain Debug Tool - Help ----------------+
|                                                     |
| Global Keys:                                        |
|   q            Quit (from menu) / Back to menu      |
|   Ctrl+C       Quit                                 |
|   ?            Toggle this help                     |
|   Tab          Cycle through views                  |
|                                                     |
| Views:                                              |
|   1. Map Explorer  - Walk the player, watch growth  |
|   2. Overview      - Session and streaming stats    |
|   3. Journal       - Committed expansions           |
|                                                     |
| Map Explorer:                                       |
|   Arrow keys     Move the player one tile           |
|   Shift+arrows   Move five tiles                    |
|   c              Force an edge check                |
|   d              Drain the running expansion        |
|   i              Toggle the info panel              |
|                                                     |
| Press ? again to close this help                    |
+-----------------------------------------------------+
`
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// NewSwitchViewMsg creates a new switch view message
func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}
