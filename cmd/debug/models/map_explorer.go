package models

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/cmd/debug/components"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/player"
	"github.com/VoidMesh/terrain/internal/terrain"
)

// StreamTickInterval is how often the debug tool advances the streamer.
const StreamTickInterval = 50 * time.Millisecond

type streamTickMsg struct{}

// MapExplorerModel renders the terrain around the player and drives streaming.
type MapExplorerModel struct {
	service *terrain.Service
	tracker *player.Tracker

	width  int
	height int

	vegetation map[grid.Cell]bool
	vegCount   int
	stats      terrain.Stats
	message    string
	showInfo   bool
}

// NewMapExplorerModel creates a new map explorer model
func NewMapExplorerModel(service *terrain.Service, tracker *player.Tracker) MapExplorerModel {
	m := MapExplorerModel{
		service:    service,
		tracker:    tracker,
		vegetation: make(map[grid.Cell]bool),
		showInfo:   true,
	}
	m.refresh()
	return m
}

func (m MapExplorerModel) Init() tea.Cmd {
	return nil
}

func (m MapExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case streamTickMsg:
		m.service.Tick(m.tracker.Position())
		m.refresh()
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.move(0, 1)
		case "down", "j":
			m.move(0, -1)
		case "left", "h":
			m.move(-1, 0)
		case "right", "l":
			m.move(1, 0)
		case "shift+up":
			m.move(0, 5)
		case "shift+down":
			m.move(0, -5)
		case "shift+left":
			m.move(-5, 0)
		case "shift+right":
			m.move(5, 0)

		case "c":
			trigger, err := m.service.Check(m.tracker.Position())
			switch {
			case err != nil:
				m.message = err.Error()
			case trigger.Dropped:
				m.message = "Check dropped: expansion in progress"
			case trigger.Fired:
				m.message = fmt.Sprintf("Expansion started: %s", trigger.Directions)
			default:
				m.message = "No edge within trigger distance"
			}

		case "d":
			if exp, ok := m.service.Drain(); ok {
				m.message = fmt.Sprintf("Drained expansion %s in %d ticks", exp.Directions, exp.Ticks)
			} else {
				m.message = "Nothing to drain"
			}
			m.refresh()

		case "i":
			m.showInfo = !m.showInfo
		}
	}

	return m, nil
}

// move steps the player by whole tiles. Moves onto anything but committed Grass are refused.
func (m *MapExplorerModel) move(dx, dy int) {
	frame := m.service.Frame()
	cell := frame.WorldToGrid(m.tracker.Position()).Add(dx, dy)
	if !m.service.IsCellWalkable(cell) {
		m.message = fmt.Sprintf("Blocked: %s is %s", cell, m.service.Cell(cell))
		return
	}
	if err := m.tracker.SetPosition(frame.GridToWorld(cell)); err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
}

func (m *MapExplorerModel) refresh() {
	m.stats = m.service.Stats()
	if m.stats.Vegetation == m.vegCount {
		return
	}
	for _, inst := range m.service.Vegetation() {
		m.vegetation[inst.Cell] = true
	}
	m.vegCount = m.stats.Vegetation
}

func (m MapExplorerModel) tickCmd() tea.Cmd {
	return tea.Tick(StreamTickInterval, func(t time.Time) tea.Msg {
		return streamTickMsg{}
	})
}

func (m MapExplorerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(components.SubtitleStyle.Render("Map Explorer") + "\n")

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, m.renderMap(), m.renderInfoPanel())
	s.WriteString(mainContent + "\n")

	if m.message != "" {
		s.WriteString(components.MessageStyle.Render(m.message) + "\n")
	}

	statusBar := components.StatusBarStyle.Width(m.width).Render(
		"Arrows move • c check • d drain • i info • Tab next view • q back",
	)
	s.WriteString(statusBar)
	return s.String()
}

func (m MapExplorerModel) viewport() grid.Bounds {
	cols := (m.width - 40) / 2
	if !m.showInfo {
		cols = (m.width - 4) / 2
	}
	rows := m.height - 6
	cols = max(cols, 8)
	rows = max(rows, 8)
	return grid.Centered(m.service.WorldToGrid(m.tracker.Position()), cols, rows)
}

// renderMap draws north at the top.
func (m MapExplorerModel) renderMap() string {
	view := m.viewport()
	playerCell := m.service.WorldToGrid(m.tracker.Position())

	var rows []string
	for y := view.Max.Y; y >= view.Min.Y; y-- {
		var row strings.Builder
		for x := view.Min.X; x <= view.Max.X; x++ {
			row.WriteString(m.renderCell(grid.Cell{X: x, Y: y}, playerCell))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func (m MapExplorerModel) renderCell(c, playerCell grid.Cell) string {
	if c == playerCell {
		return components.PlayerCellStyle.Render(components.PlayerSymbol)
	}

	t := m.service.Cell(c)
	if t == grid.Ungenerated {
		if m.stats.Expanding && m.stats.Pending.Contains(c) {
			return components.PendingCellStyle.Render(components.PendingSymbol)
		}
		return components.RenderTerrain(t)
	}
	if t == grid.Grass && m.vegetation[c] {
		return components.VegetationCellStyle.Render(components.VegetationSymbol)
	}
	return components.RenderTerrain(t)
}

func (m MapExplorerModel) renderInfoPanel() string {
	if !m.showInfo {
		return ""
	}

	pos, moves := m.tracker.Snapshot()
	cell := m.service.WorldToGrid(pos.Vec2())
	west, east, south, north := m.stats.Bounds.EdgeDistance(cell)

	var info strings.Builder
	info.WriteString(components.SubtitleStyle.Render("Player") + "\n")
	info.WriteString(fmt.Sprintf("World:  (%.1f, %.1f)\n", pos.X, pos.Y))
	info.WriteString(fmt.Sprintf("Cell:   %s\n", cell))
	info.WriteString(fmt.Sprintf("Moves:  %d\n", moves))
	info.WriteString(fmt.Sprintf("Edges:  W%d E%d S%d N%d\n\n", west, east, south, north))

	info.WriteString(components.SubtitleStyle.Render("Streaming") + "\n")
	info.WriteString(fmt.Sprintf("Bounds: %s\n", m.stats.Bounds))
	info.WriteString(fmt.Sprintf("Phase:  %s\n", m.stats.Phase))
	if m.stats.Expanding {
		info.WriteString(fmt.Sprintf("Target: %s\n", m.stats.Pending))
	}
	info.WriteString(fmt.Sprintf("Commits: %d\n\n", m.stats.Expansions))

	info.WriteString(components.SubtitleStyle.Render("Terrain") + "\n")
	info.WriteString(fmt.Sprintf("Grass:  %d\n", m.stats.GrassCells))
	info.WriteString(fmt.Sprintf("Water:  %d\n", m.stats.WaterCells))
	info.WriteString(fmt.Sprintf("Ponds:  %d\n", m.stats.Clusters))
	info.WriteString(fmt.Sprintf("Plants: %d", m.stats.Vegetation))

	return components.InfoPanelStyle.Render(info.String())
}

// SetSize updates the explorer size
func (m *MapExplorerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
