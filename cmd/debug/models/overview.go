package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/cmd/debug/components"
	"github.com/VoidMesh/terrain/internal/terrain"
)

// OverviewModel handles the session overview view
type OverviewModel struct {
	service *terrain.Service
	stats   terrain.Stats
	width   int
	height  int
}

// NewOverviewModel creates a new overview model
func NewOverviewModel(service *terrain.Service) OverviewModel {
	return OverviewModel{
		service: service,
		stats:   service.Stats(),
	}
}

type overviewRefreshMsg struct{}

func (m OverviewModel) Init() tea.Cmd {
	return func() tea.Msg {
		return overviewRefreshMsg{}
	}
}

// Update handles overview messages
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewRefreshMsg:
		m.stats = m.service.Stats()
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.stats = m.service.Stats()
		}
	}
	return m, nil
}

// View renders the overview
func (m OverviewModel) View() string {
	var s strings.Builder
	s.WriteString(components.TitleStyle.Render("Session Overview") + "\n\n")

	report := m.service.Report()
	cfg := m.service.Config()

	session := fmt.Sprintf(
		"Seed:          %d\nTile size:     %.2f\nInitial map:   %dx%d\nInitial build: %s\nClusters:      %d\nVegetation:    %d",
		report.Seed, cfg.TileSize, cfg.MapWidth, cfg.MapHeight, report.Duration, report.Clusters, report.Vegetation,
	)

	total := m.stats.GrassCells + m.stats.WaterCells
	waterShare := 0.0
	if total > 0 {
		waterShare = float64(m.stats.WaterCells) / float64(total) * 100
	}
	current := fmt.Sprintf(
		"Bounds:        %s\nExpansions:    %d\nPhase:         %s\nGrass:         %d\nWater:         %d (%.1f%%)\nChunks:        %d",
		m.stats.Bounds, m.stats.Expansions, m.stats.Phase, m.stats.GrassCells, m.stats.WaterCells, waterShare, m.stats.Chunks,
	)

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		components.BorderStyle.Render(components.SubtitleStyle.Render("Initial build")+"\n"+session),
		components.BorderStyle.Render(components.SubtitleStyle.Render("Current")+"\n"+current),
	))
	s.WriteString("\n\n")

	statusBar := components.StatusBarStyle.Width(m.width).Render("Press 'r' to refresh • 'q' to go back")
	s.WriteString(statusBar)

	return s.String()
}

// SetSize updates the overview size
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
