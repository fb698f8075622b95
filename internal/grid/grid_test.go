package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		bounds   Bounds
		tileSize float64
		wantErr  error
	}{
		{
			name:     "valid grid",
			bounds:   Bounds{Max: Cell{X: 19, Y: 19}},
			tileSize: 1,
		},
		{
			name:     "zero tile size",
			bounds:   Bounds{Max: Cell{X: 19, Y: 19}},
			tileSize: 0,
			wantErr:  ErrInvalidTileSize,
		},
		{
			name:     "negative tile size",
			bounds:   Bounds{Max: Cell{X: 19, Y: 19}},
			tileSize: -2,
			wantErr:  ErrInvalidTileSize,
		},
		{
			name:     "empty bounds",
			bounds:   Bounds{Min: Cell{X: 5, Y: 5}, Max: Cell{X: 4, Y: 9}},
			tileSize: 1,
			wantErr:  ErrEmptyBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.bounds, tt.tileSize, Vec2{})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bounds, g.Bounds())
			assert.Equal(t, tt.tileSize, g.TileSize())
		})
	}
}

func TestGrid_GetSet(t *testing.T) {
	g, err := New(Bounds{Min: Cell{X: -10, Y: -10}, Max: Cell{X: 9, Y: 9}}, 1, Vec2{})
	require.NoError(t, err)

	assert.Equal(t, Ungenerated, g.Get(Cell{X: 0, Y: 0}), "new cells start ungenerated")

	assert.True(t, g.Set(Cell{X: -10, Y: -10}, Water))
	assert.True(t, g.Set(Cell{X: 9, Y: 9}, Grass))
	assert.Equal(t, Water, g.Get(Cell{X: -10, Y: -10}))
	assert.Equal(t, Grass, g.Get(Cell{X: 9, Y: 9}))

	assert.False(t, g.Set(Cell{X: 10, Y: 0}, Grass), "writes outside the window are dropped")
	assert.Equal(t, Ungenerated, g.Get(Cell{X: 10, Y: 0}))
	assert.Equal(t, Ungenerated, g.Get(Cell{X: -11, Y: 3}))
}

func TestGrid_Grow(t *testing.T) {
	g, err := New(Bounds{Max: Cell{X: 9, Y: 9}}, 1, Vec2{})
	require.NoError(t, err)
	g.Fill(g.Bounds(), Grass)

	next := Bounds{Min: Cell{X: 0, Y: 0}, Max: Cell{X: 49, Y: 9}}
	got := g.Grow(next)

	assert.Equal(t, next, got)
	assert.Equal(t, Grass, g.Get(Cell{X: 5, Y: 5}), "existing cells keep their terrain")
	assert.Equal(t, Ungenerated, g.Get(Cell{X: 40, Y: 5}), "new cells are ungenerated")
	assert.True(t, g.Set(Cell{X: 49, Y: 9}, Water))

	assert.Equal(t, got, g.Grow(Bounds{Min: Cell{X: 1, Y: 1}, Max: Cell{X: 0, Y: 0}}), "growing by an empty rect is a no-op")
}

func TestGrid_FillCountSnapshot(t *testing.T) {
	g, err := New(Bounds{Max: Cell{X: 3, Y: 3}}, 1, Vec2{})
	require.NoError(t, err)

	assert.Equal(t, 16, g.Fill(Bounds{Min: Cell{X: -5, Y: -5}, Max: Cell{X: 10, Y: 10}}, Grass), "fill is clipped to the window")
	assert.Equal(t, 4, g.Fill(Bounds{Min: Cell{X: 1, Y: 1}, Max: Cell{X: 2, Y: 2}}, Water))

	assert.Equal(t, 12, g.Count(g.Bounds(), Grass))
	assert.Equal(t, 4, g.Count(g.Bounds(), Water))

	tiles := g.Snapshot(Bounds{Min: Cell{X: 1, Y: 1}, Max: Cell{X: 5, Y: 1}})
	require.Len(t, tiles, 3)
	assert.Equal(t, Tile{Cell: Cell{X: 1, Y: 1}, Type: Water}, tiles[0])
	assert.Equal(t, Tile{Cell: Cell{X: 3, Y: 1}, Type: Grass}, tiles[2])

	assert.Empty(t, g.Snapshot(Bounds{Min: Cell{X: 20, Y: 20}, Max: Cell{X: 30, Y: 30}}))
}

func TestGrid_NegativeCoordinatesSpanChunks(t *testing.T) {
	g, err := New(Bounds{Min: Cell{X: -40, Y: -40}, Max: Cell{X: 40, Y: 40}}, 1, Vec2{})
	require.NoError(t, err)

	cells := []Cell{{X: -1, Y: -1}, {X: -32, Y: -33}, {X: 31, Y: 32}, {X: 0, Y: -1}}
	for i, c := range cells {
		require.True(t, g.Set(c, Water))
		for _, other := range cells[i+1:] {
			assert.Equal(t, Ungenerated, g.Get(other), "writing %s must not alias %s", c, other)
		}
	}
	assert.Equal(t, 16, g.ChunkCount())
}

func TestFrame_Conversions(t *testing.T) {
	tests := []struct {
		name     string
		tileSize float64
		origin   Vec2
		world    Vec2
		cell     Cell
		centre   Vec2
	}{
		{
			name:     "unit tiles at origin",
			tileSize: 1,
			world:    Vec2{X: 3.7, Y: 2.1},
			cell:     Cell{X: 3, Y: 2},
			centre:   Vec2{X: 3.5, Y: 2.5},
		},
		{
			name:     "negative positions floor",
			tileSize: 1,
			world:    Vec2{X: -0.2, Y: -1.0},
			cell:     Cell{X: -1, Y: -1},
			centre:   Vec2{X: -0.5, Y: -0.5},
		},
		{
			name:     "tile size and offset",
			tileSize: 16,
			origin:   Vec2{X: 100, Y: -50},
			world:    Vec2{X: 133, Y: -51},
			cell:     Cell{X: 2, Y: -1},
			centre:   Vec2{X: 140, Y: -58},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(Bounds{Max: Cell{X: 1, Y: 1}}, tt.tileSize, tt.origin)
			require.NoError(t, err)

			assert.Equal(t, tt.cell, g.WorldToGrid(tt.world))
			assert.Equal(t, tt.centre, g.GridToWorld(tt.cell))
			assert.Equal(t, tt.cell, g.WorldToGrid(g.GridToWorld(tt.cell)), "centre maps back to its cell")
		})
	}
}

func TestFrame_FarPositionsSaturate(t *testing.T) {
	f, err := NewFrame(1, Vec2{})
	require.NoError(t, err)

	assert.Equal(t, Cell{X: MaxCoord, Y: 7}, f.WorldToGrid(Vec2{X: 1e300, Y: 7.5}))
	assert.Equal(t, Cell{X: -MaxCoord, Y: MaxCoord}, f.WorldToGrid(Vec2{X: -1e19, Y: math.Inf(1)}))
	assert.Equal(t, Cell{X: MaxCoord, Y: 0}, f.WorldToGrid(Vec2{X: math.NaN(), Y: 0.5}))
	assert.Equal(t, Cell{X: MaxCoord - 1, Y: -MaxCoord}, f.WorldToGrid(Vec2{X: MaxCoord - 0.5, Y: -MaxCoord - 0.5}))
}

func TestNewFrame_RejectsBadTileSize(t *testing.T) {
	_, err := NewFrame(0, Vec2{})
	assert.ErrorIs(t, err, ErrInvalidTileSize)
}
