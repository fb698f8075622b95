package safezone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/smoothing"
	"github.com/VoidMesh/terrain/internal/testutil"
)

func TestCarver_CarveAt(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	g := testutil.NewGrid(t, 21, 21, grid.Water)
	center := grid.Cell{X: 10, Y: 10}
	c := NewCarver(5, 2, smoothing.NewSmoother(8, nil), nil)

	result := c.CarveAt(g, center)

	assert.Equal(t, 81, result.Cleared)
	assert.Equal(t, Zone{Center: center, Radius: 5}, result.Zone)
	g.Bounds().Each(func(cell grid.Cell) bool {
		d := grid.DistSq(cell, center)
		switch {
		case d <= 25:
			assert.Equal(t, grid.Grass, g.Get(cell), "cell %s inside the zone", cell)
		case d > 49:
			assert.Equal(t, grid.Water, g.Get(cell), "cell %s beyond the ring is untouched", cell)
		}
		return true
	})
	assert.Equal(t, grid.Water, g.Get(grid.Cell{X: 0, Y: 0}))
}

func TestCarver_Idempotent(t *testing.T) {
	g := testutil.NewGrid(t, 21, 21, grid.Water)
	c := NewCarver(5, 2, smoothing.NewSmoother(100, nil), nil)

	c.CarveAt(g, grid.Cell{X: 10, Y: 10})
	snapshot := testutil.FormatGrid(g, g.Bounds())

	again := c.CarveAt(g, grid.Cell{X: 10, Y: 10})
	assert.Zero(t, again.Cleared)
	assert.Zero(t, again.RingChanged)
	assert.Equal(t, snapshot, testutil.FormatGrid(g, g.Bounds()))
}

func TestCarver_Edges(t *testing.T) {
	tests := []struct {
		name    string
		radius  int
		center  grid.Cell
		cleared int
	}{
		{name: "zero radius clears only the center", radius: 0, center: grid.Cell{X: 4, Y: 4}, cleared: 1},
		{name: "zone clipped at the corner", radius: 2, center: grid.Cell{X: 0, Y: 0}, cleared: 6},
		{name: "center outside the grid", radius: 1, center: grid.Cell{X: 40, Y: 40}, cleared: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewGrid(t, 9, 9, grid.Water)
			c := NewCarver(tt.radius, 0, nil, nil)

			result := c.CarveAt(g, tt.center)

			assert.Equal(t, tt.cleared, result.Cleared)
			assert.Equal(t, tt.cleared, g.Count(g.Bounds(), grid.Grass))
		})
	}
}

func TestCarver_CarveFromWorldPosition(t *testing.T) {
	g := testutil.NewGrid(t, 9, 9, grid.Water)
	c := NewCarver(1, 0, nil, nil)

	result := c.Carve(g, grid.Vec2{X: 4.9, Y: 4.1})

	assert.Equal(t, grid.Cell{X: 4, Y: 4}, result.Zone.Center)
	assert.Equal(t, 5, result.Cleared)
}

func TestZone(t *testing.T) {
	z := Zone{Center: grid.Cell{X: 0, Y: 0}, Radius: 3}

	assert.True(t, z.Contains(grid.Cell{X: 3, Y: 0}))
	assert.False(t, z.Contains(grid.Cell{X: 3, Y: 1}))
	assert.Equal(t, grid.Bounds{Min: grid.Cell{X: -3, Y: -3}, Max: grid.Cell{X: 3, Y: 3}}, z.Bounds())
}
