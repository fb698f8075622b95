// Package testutil provides common setup, fixtures and a recording logger for terrain tests.
package testutil

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
)

// TestConfig holds configuration for test setup
type TestConfig struct {
	// EnableLogCapture routes the global logger to t.Log instead of discarding it
	EnableLogCapture bool
}

// DefaultTestConfig returns a default test configuration suitable for most tests
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		EnableLogCapture: false,
	}
}

// SetupTest initializes the test environment with the provided configuration.
//
// Usage:
//
//	func TestMyFunction(t *testing.T) {
//	    cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	    defer cleanup()
//	}
func SetupTest(t *testing.T, cfg *TestConfig) func() {
	t.Helper()

	original := logging.Logger
	if cfg.EnableLogCapture {
		testLogger := log.New(testWriter{t: t})
		testLogger.SetLevel(log.DebugLevel)
		logging.Logger = testLogger
	} else {
		logging.Logger = log.New(io.Discard)
	}

	return func() {
		logging.Logger = original
	}
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}

// TerrainConfig returns a small deterministic configuration for tests.
func TerrainConfig() config.TerrainConfig {
	return config.DefaultTerrain().
		WithSeed(42).
		WithMapSize(48, 48)
}

// NewGrid allocates a width x height grid with its minimum corner at the origin, filled
// with fill.
func NewGrid(t *testing.T, width, height int, fill grid.TerrainType) *grid.Grid {
	t.Helper()

	b := grid.Bounds{Max: grid.Cell{X: width - 1, Y: height - 1}}
	g, err := grid.New(b, 1, grid.Vec2{})
	require.NoError(t, err)
	if fill != grid.Ungenerated {
		g.Fill(b, fill)
	}
	return g
}

// ParseGrid builds a grid from rows of '.' (Grass) and '~' (Water). The first row is the
// top, so it has the highest Y.
func ParseGrid(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	require.NotEmpty(t, rows)

	height := len(rows)
	width := len(rows[0])
	g := NewGrid(t, width, height, grid.Grass)
	for i, row := range rows {
		require.Len(t, row, width, "row %d has the wrong width", i)
		y := height - 1 - i
		for x, ch := range row {
			switch ch {
			case '.':
				g.Set(grid.Cell{X: x, Y: y}, grid.Grass)
			case '~':
				g.Set(grid.Cell{X: x, Y: y}, grid.Water)
			default:
				t.Fatalf("unexpected map symbol %q at row %d", ch, i)
			}
		}
	}
	return g
}

// FormatGrid renders b in the ParseGrid notation, for failure messages.
func FormatGrid(g *grid.Grid, b grid.Bounds) string {
	var sb strings.Builder
	for y := b.Max.Y; y >= b.Min.Y; y-- {
		for x := b.Min.X; x <= b.Max.X; x++ {
			switch g.Get(grid.Cell{X: x, Y: y}) {
			case grid.Grass:
				sb.WriteByte('.')
			case grid.Water:
				sb.WriteByte('~')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
