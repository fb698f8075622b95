package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/internal/grid"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Terrain colors
	GrassColor       = lipgloss.Color("#3A7D44")
	WaterColor       = lipgloss.Color("#2E6FBF")
	VegetationColor  = lipgloss.Color("#1F4D2B")
	PendingColor     = lipgloss.Color("#5C4B8A")
	UngeneratedColor = lipgloss.Color("#1C1C1C")
	PlayerColor      = lipgloss.Color("#FFD700")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(1)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(1).
			Width(34)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	MessageStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	// Map cells are two columns wide so they render roughly square.
	cellStyle = lipgloss.NewStyle().Width(2)

	GrassCellStyle       = cellStyle.Background(GrassColor).Foreground(lipgloss.Color("#5FAF6A"))
	WaterCellStyle       = cellStyle.Background(WaterColor).Foreground(lipgloss.Color("#8FB8E8"))
	VegetationCellStyle  = cellStyle.Background(GrassColor).Foreground(VegetationColor).Bold(true)
	PendingCellStyle     = cellStyle.Background(PendingColor).Foreground(Gray)
	UngeneratedCellStyle = cellStyle.Background(UngeneratedColor)
	PlayerCellStyle      = cellStyle.Background(PlayerColor).Foreground(lipgloss.Color("#000000")).Bold(true)
)

// Map symbols
const (
	GrassSymbol       = ".."
	WaterSymbol       = "~~"
	VegetationSymbol  = "##"
	PendingSymbol     = "::"
	UngeneratedSymbol = "  "
	PlayerSymbol      = "@@"
)

// RenderTerrain renders one map cell.
func RenderTerrain(t grid.TerrainType) string {
	switch t {
	case grid.Grass:
		return GrassCellStyle.Render(GrassSymbol)
	case grid.Water:
		return WaterCellStyle.Render(WaterSymbol)
	default:
		return UngeneratedCellStyle.Render(UngeneratedSymbol)
	}
}

