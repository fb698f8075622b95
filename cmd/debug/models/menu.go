package models

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/cmd/debug/components"
	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/terrain"
)

type menuEntry struct {
	title  string
	view   ViewType
	status func() string
}

// MenuModel lists the views, each with a live line from the running session.
type MenuModel struct {
	entries []menuEntry
	cursor  int
	width   int
	height  int
}

// NewMenuModel creates a new menu model
func NewMenuModel(service *terrain.Service, journal *db.Journal) MenuModel {
	return MenuModel{entries: []menuEntry{
		{
			title: "Map Explorer",
			view:  MapView,
			status: func() string {
				stats := service.Stats()
				if stats.Expanding {
					return fmt.Sprintf("expanding to %s, phase %s", stats.Pending, stats.Phase)
				}
				return fmt.Sprintf("idle at %s", stats.Bounds)
			},
		},
		{
			title: "Session Overview",
			view:  OverviewView,
			status: func() string {
				stats := service.Stats()
				return fmt.Sprintf("seed %d, %d grass, %d water, %d plants",
					stats.Seed, stats.GrassCells, stats.WaterCells, stats.Vegetation)
			},
		},
		{
			title: "Expansion Journal",
			view:  JournalView,
			status: func() string {
				line := fmt.Sprintf("%d committed", service.Stats().Expansions)
				if dropped := journal.Dropped(); dropped > 0 {
					line += fmt.Sprintf(", %d dropped", dropped)
				}
				return line
			},
		},
	}}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.cursor = (m.cursor + len(m.entries) - 1) % len(m.entries)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.entries)
	case "enter", " ":
		return m, m.open()
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(m.entries) {
			m.cursor = n - 1
			return m, m.open()
		}
	}
	return m, nil
}

func (m MenuModel) open() tea.Cmd {
	view := m.entries[m.cursor].view
	return func() tea.Msg {
		return NewSwitchViewMsg(view)
	}
}

func (m MenuModel) View() string {
	rows := make([]string, len(m.entries))
	for i, e := range m.entries {
		style := components.MenuItemStyle
		if i == m.cursor {
			style = components.SelectedMenuItemStyle
		}
		rows[i] = style.Render(fmt.Sprintf("%d. %-18s %s", i+1, e.title, e.status()))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.PrimaryColor).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("VoidMesh Terrain Debug Tool"),
		"",
		box,
		"",
		components.HelpStyle.Render("↑/↓ or j/k move • enter or number opens • tab cycles • ? help • q quit"),
	)
	if m.width > 0 {
		content = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
	}
	return content
}

// SetSize updates the menu size
func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
