package grid

import (
	"errors"
	"fmt"
)

const (
	ChunkSize = 32 // 32x32 cells per storage chunk
)

var (
	ErrInvalidTileSize = errors.New("grid: tile size must be positive")
	ErrEmptyBounds     = errors.New("grid: bounds are empty")
)

type chunkKey struct {
	cx, cy int
}

type chunk struct {
	cells [ChunkSize * ChunkSize]TerrainType
}

// Grid owns the terrain storage for one session. The window only grows; cells outside it
// read as Ungenerated.
type Grid struct {
	window Bounds
	chunks map[chunkKey]*chunk
	frame  Frame
}

// New creates a grid covering bounds. Cells start Ungenerated.
func New(bounds Bounds, tileSize float64, origin Vec2) (*Grid, error) {
	frame, err := NewFrame(tileSize, origin)
	if err != nil {
		return nil, err
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBounds, bounds)
	}
	g := &Grid{
		chunks: make(map[chunkKey]*chunk),
		frame:  frame,
		window: bounds,
	}
	g.allocate(bounds)
	return g, nil
}

// Bounds returns the allocated window.
func (g *Grid) Bounds() Bounds {
	return g.window
}

func (g *Grid) TileSize() float64 {
	return g.frame.TileSize
}

func (g *Grid) Origin() Vec2 {
	return g.frame.Origin
}

func (g *Grid) Frame() Frame {
	return g.frame
}

// Get returns the terrain at c, or Ungenerated outside the window.
func (g *Grid) Get(c Cell) TerrainType {
	if !g.window.Contains(c) {
		return Ungenerated
	}
	ch, ok := g.chunks[keyOf(c)]
	if !ok {
		return Ungenerated
	}
	return ch.cells[localIndex(c)]
}

// Set writes t at c. Writes outside the window are dropped and reported as false.
func (g *Grid) Set(c Cell, t TerrainType) bool {
	if !g.window.Contains(c) {
		return false
	}
	k := keyOf(c)
	ch, ok := g.chunks[k]
	if !ok {
		ch = &chunk{}
		g.chunks[k] = ch
	}
	ch.cells[localIndex(c)] = t
	return true
}

// Is reports whether c holds t.
func (g *Grid) Is(c Cell, t TerrainType) bool {
	return g.Get(c) == t
}

// Grow extends the window to also cover b. Newly covered cells are Ungenerated.
func (g *Grid) Grow(b Bounds) Bounds {
	if b.Empty() {
		return g.window
	}
	g.window = g.window.Union(b)
	g.allocate(g.window)
	return g.window
}

func (g *Grid) allocate(b Bounds) {
	minKey := keyOf(b.Min)
	maxKey := keyOf(b.Max)
	for cy := minKey.cy; cy <= maxKey.cy; cy++ {
		for cx := minKey.cx; cx <= maxKey.cx; cx++ {
			k := chunkKey{cx: cx, cy: cy}
			if _, ok := g.chunks[k]; !ok {
				g.chunks[k] = &chunk{}
			}
		}
	}
}

// Fill writes t into every cell of b that lies inside the window and returns how many
// cells were written.
func (g *Grid) Fill(b Bounds, t TerrainType) int {
	area := b.Intersect(g.window)
	if area.Empty() {
		return 0
	}
	n := 0
	area.Each(func(c Cell) bool {
		g.Set(c, t)
		n++
		return true
	})
	return n
}

// Count returns the number of cells of type t inside b.
func (g *Grid) Count(b Bounds, t TerrainType) int {
	area := b.Intersect(g.window)
	n := 0
	area.Each(func(c Cell) bool {
		if g.Get(c) == t {
			n++
		}
		return true
	})
	return n
}

// Snapshot returns every cell of b clipped to the window in row-major order.
func (g *Grid) Snapshot(b Bounds) []Tile {
	area := b.Intersect(g.window)
	if area.Empty() {
		return []Tile{}
	}
	tiles := make([]Tile, 0, area.Area())
	area.Each(func(c Cell) bool {
		tiles = append(tiles, Tile{Cell: c, Type: g.Get(c)})
		return true
	})
	return tiles
}

// WorldToGrid maps a world position to the cell containing it.
func (g *Grid) WorldToGrid(p Vec2) Cell {
	return g.frame.WorldToGrid(p)
}

// GridToWorld maps a cell to the world position of its centre.
func (g *Grid) GridToWorld(c Cell) Vec2 {
	return g.frame.GridToWorld(c)
}

// ChunkCount returns the number of allocated storage chunks.
func (g *Grid) ChunkCount() int {
	return len(g.chunks)
}

func keyOf(c Cell) chunkKey {
	return chunkKey{cx: floorDiv(c.X, ChunkSize), cy: floorDiv(c.Y, ChunkSize)}
}

func localIndex(c Cell) int {
	lx := c.X - floorDiv(c.X, ChunkSize)*ChunkSize
	ly := c.Y - floorDiv(c.Y, ChunkSize)*ChunkSize
	return ly*ChunkSize + lx
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
