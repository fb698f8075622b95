package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/terrain/cmd/debug/components"
	"github.com/VoidMesh/terrain/internal/db"
)

const journalPageSize = 200

type journalLoadedMsg struct {
	expansions []db.Expansion
	err        error
}

// JournalModel lists the expansions recorded for the running session.
type JournalModel struct {
	journal    *db.Journal
	expansions []db.Expansion
	offset     int
	errorMsg   string
	loadedAt   time.Time
	width      int
	height     int
}

// NewJournalModel creates a new journal model
func NewJournalModel(journal *db.Journal) JournalModel {
	return JournalModel{journal: journal}
}

func (m JournalModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case journalLoadedMsg:
		m.loadedAt = time.Now()
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.errorMsg = ""
		m.expansions = msg.expansions

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadCmd()
		case "down", "j":
			if m.offset < len(m.expansions)-1 {
				m.offset++
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		}
	}
	return m, nil
}

func (m JournalModel) View() string {
	var s strings.Builder
	s.WriteString(components.TitleStyle.Render("Expansion Journal") + "\n\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n\n")
	}

	header := fmt.Sprintf("%-10s %-12s %-24s %8s %6s %6s %6s %8s",
		"ID", "Directions", "Bounds", "Cells", "Ponds", "Water", "Plants", "Ticks")
	s.WriteString(components.TableHeaderStyle.Render(header) + "\n")

	if len(m.expansions) == 0 {
		s.WriteString(components.TableCellStyle.Render("No expansions recorded yet") + "\n")
	}

	visible := max(m.height-10, 1)
	end := min(m.offset+visible, len(m.expansions))
	for _, exp := range m.expansions[min(m.offset, end):end] {
		bounds := fmt.Sprintf("(%d,%d)..(%d,%d)", exp.MinX, exp.MinY, exp.MaxX, exp.MaxY)
		row := fmt.Sprintf("%-10s %-12s %-24s %8d %6d %6d %6d %8d",
			exp.ID[:8], exp.Directions, bounds, exp.NewCells, exp.Clusters, exp.WaterCells, exp.Vegetation, exp.Ticks)
		s.WriteString(components.TableCellStyle.Render(row) + "\n")
	}

	s.WriteString("\n")
	status := fmt.Sprintf("%d expansions • session %s • r refresh • ↑/↓ scroll • q back",
		len(m.expansions), m.journal.SessionID())
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(status))
	return s.String()
}

func (m JournalModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		expansions, err := m.journal.ListExpansions(ctx, journalPageSize)
		return journalLoadedMsg{expansions: expansions, err: err}
	}
}

// SetSize updates the journal view size
func (m *JournalModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
