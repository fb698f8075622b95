package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/testutil"
)

type cellSet map[grid.Cell]bool

func (s cellSet) Contains(c grid.Cell) bool {
	return s[c]
}

func TestEnforcer_EnforceProtected(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name    string
		rows    []string
		minSize int
		protect Protected
		expect  func(t *testing.T, g *grid.Grid, result Result)
	}{
		{
			name: "already connected",
			rows: []string{
				"..~..",
				".....",
				"..~..",
			},
			minSize: 3,
			expect: func(t *testing.T, g *grid.Grid, result Result) {
				assert.Equal(t, 1, result.Components)
				assert.Equal(t, 13, result.MainSize)
				assert.Zero(t, result.Bridged)
				assert.Zero(t, result.Flooded)
			},
		},
		{
			name: "large component is bridged",
			rows: []string{
				"....~....",
				"....~....",
				"....~....",
			},
			minSize: 5,
			expect: func(t *testing.T, g *grid.Grid, result Result) {
				assert.Equal(t, 2, result.Components)
				assert.Equal(t, 1, result.Bridged)
				assert.Equal(t, 1, result.CarvedCells)
				assert.Equal(t, 2, g.Count(g.Bounds(), grid.Water), "a single cell of the wall is opened")
			},
		},
		{
			name: "small island is flooded",
			rows: []string{
				".....~~~~",
				".....~.~~",
				".....~~~~",
			},
			minSize: 3,
			expect: func(t *testing.T, g *grid.Grid, result Result) {
				assert.Equal(t, 1, result.Flooded)
				assert.Equal(t, 1, result.FloodedCells)
				assert.Equal(t, grid.Water, g.Get(grid.Cell{X: 6, Y: 1}))
			},
		},
		{
			name: "protected island is bridged however small",
			rows: []string{
				".....~~~~",
				".....~.~~",
				".....~~~~",
			},
			minSize: 3,
			protect: cellSet{{X: 6, Y: 1}: true},
			expect: func(t *testing.T, g *grid.Grid, result Result) {
				assert.Zero(t, result.Flooded)
				assert.Equal(t, 1, result.Bridged)
				assert.Equal(t, grid.Grass, g.Get(grid.Cell{X: 6, Y: 1}))
				assert.Equal(t, grid.Grass, g.Get(grid.Cell{X: 5, Y: 1}))
			},
		},
		{
			name: "mixed islands",
			rows: []string{
				"...~~~~~~~~",
				"...~..~~.~~",
				"...~..~~~~~",
				"...~~~~~~~~",
			},
			minSize: 3,
			expect: func(t *testing.T, g *grid.Grid, result Result) {
				assert.Equal(t, 3, result.Components)
				assert.Equal(t, 1, result.Bridged, "the 2x2 pond island joins")
				assert.Equal(t, 1, result.Flooded, "the single cell drowns")
				assert.Equal(t, grid.Water, g.Get(grid.Cell{X: 8, Y: 2}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.ParseGrid(t, tt.rows...)
			e := NewEnforcer(tt.minSize, nil)

			result := e.EnforceProtected(g, g.Bounds(), tt.protect)
			tt.expect(t, g, result)

			comps := Components(g, g.Bounds())
			require.Len(t, comps, 1, "grass must form one component:\n%s", testutil.FormatGrid(g, g.Bounds()))
		})
	}
}

func TestEnforcer_Idempotent(t *testing.T) {
	g := testutil.ParseGrid(t,
		"..~~~..~.",
		"..~.~..~.",
		"~~~~~~~~~",
		".~...~..~",
	)
	e := NewEnforcer(2, nil)

	e.Enforce(g, g.Bounds())
	snapshot := testutil.FormatGrid(g, g.Bounds())

	again := e.Enforce(g, g.Bounds())
	assert.Equal(t, 1, again.Components)
	assert.Equal(t, snapshot, testutil.FormatGrid(g, g.Bounds()))
}

func TestEnforcer_NoGrass(t *testing.T) {
	g := testutil.NewGrid(t, 6, 6, grid.Water)
	result := NewEnforcer(3, nil).Enforce(g, g.Bounds())

	assert.Zero(t, result.Components)
	assert.Equal(t, 36, g.Count(g.Bounds(), grid.Water))
	assert.Empty(t, Components(g, g.Bounds()))
}

func TestComponents_LargestFirst(t *testing.T) {
	g := testutil.ParseGrid(t,
		".~...",
		".~...",
	)
	comps := Components(g, g.Bounds())

	require.Len(t, comps, 2)
	assert.Len(t, comps[0], 6)
	assert.Len(t, comps[1], 2)
}

func TestEnforcer_EnforceWithin(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	rows := []string{
		"....~....",
		"....~....",
		"....~....",
		"~~~~~~~~~",
		"~.~~~~~~~",
	}
	area := grid.Bounds{Min: grid.Cell{X: 3, Y: 2}, Max: grid.Cell{X: 8, Y: 4}}
	island := grid.Cell{X: 1, Y: 0}

	t.Run("component next to settled grass is main", func(t *testing.T) {
		g := testutil.ParseGrid(t, rows...)
		settled := func(c grid.Cell) bool { return c.X < 3 }

		result := NewEnforcer(20, nil).EnforceWithin(g, area, settled, nil)

		assert.False(t, result.Widened)
		assert.Equal(t, area, result.Area)
		assert.Equal(t, 2, result.Components)
		assert.Equal(t, 1, result.Anchored)
		assert.Equal(t, 3, result.MainSize, "the single settled column wins over the larger block")
		assert.Equal(t, 1, result.Flooded)
		assert.Equal(t, 12, result.FloodedCells)
		assert.Equal(t, grid.Grass, g.Get(grid.Cell{X: 3, Y: 3}))
		assert.Equal(t, grid.Water, g.Get(grid.Cell{X: 6, Y: 3}))
		assert.Equal(t, grid.Grass, g.Get(island), "cells outside the area are left alone")
	})

	t.Run("large unsettled block is bridged to the settled column", func(t *testing.T) {
		g := testutil.ParseGrid(t, rows...)
		settled := func(c grid.Cell) bool { return c.X < 3 }

		result := NewEnforcer(5, nil).EnforceWithin(g, area, settled, nil)

		assert.Equal(t, 1, result.Bridged)
		assert.Equal(t, 1, result.CarvedCells)
		require.Len(t, Components(g, area), 1)
		assert.Equal(t, grid.Grass, g.Get(island))
	})

	t.Run("nothing settled widens to the whole grid", func(t *testing.T) {
		g := testutil.ParseGrid(t, rows...)
		settled := func(grid.Cell) bool { return false }

		result := NewEnforcer(20, nil).EnforceWithin(g, area, settled, nil)

		assert.True(t, result.Widened)
		assert.Equal(t, g.Bounds(), result.Area)
		assert.Equal(t, grid.Water, g.Get(island))
		require.Len(t, Components(g, g.Bounds()), 1)
	})
}

func TestEnforcer_BridgeCrossesFewestWaterCells(t *testing.T) {
	// The lower rows would cross four water cells; the top row steps over the lone grass
	// cell and only opens two.
	g := testutil.ParseGrid(t,
		"....~.~....",
		"....~~~~...",
		"....~~~~...",
	)
	result := NewEnforcer(3, nil).Enforce(g, g.Bounds())

	assert.Equal(t, 1, result.Bridged)
	assert.Equal(t, 2, result.CarvedCells)
	require.Len(t, Components(g, g.Bounds()), 1)
}
