package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds_Geometry(t *testing.T) {
	b := Bounds{Min: Cell{X: -2, Y: 1}, Max: Cell{X: 5, Y: 4}}

	assert.Equal(t, 8, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, 32, b.Area())
	assert.True(t, b.Contains(Cell{X: -2, Y: 4}))
	assert.False(t, b.Contains(Cell{X: 6, Y: 4}))

	assert.Equal(t, Bounds{Min: Cell{X: -1, Y: 2}, Max: Cell{X: 4, Y: 3}}, b.Inset(1))
	assert.True(t, b.Inset(2).Empty())
	assert.Equal(t, 0, b.Inset(3).Area())
	assert.Equal(t, Bounds{Min: Cell{X: -3, Y: 0}, Max: Cell{X: 6, Y: 5}}, b.Outset(1))
}

func TestBounds_IntersectUnion(t *testing.T) {
	a := Bounds{Min: Cell{X: 0, Y: 0}, Max: Cell{X: 9, Y: 9}}
	b := Bounds{Min: Cell{X: 5, Y: -5}, Max: Cell{X: 20, Y: 3}}
	empty := Bounds{Min: Cell{X: 1, Y: 1}, Max: Cell{X: 0, Y: 0}}

	assert.Equal(t, Bounds{Min: Cell{X: 5, Y: 0}, Max: Cell{X: 9, Y: 3}}, a.Intersect(b))
	assert.True(t, a.Intersect(Bounds{Min: Cell{X: 50, Y: 50}, Max: Cell{X: 60, Y: 60}}).Empty())

	assert.Equal(t, Bounds{Min: Cell{X: 0, Y: -5}, Max: Cell{X: 20, Y: 9}}, a.Union(b))
	assert.Equal(t, a, a.Union(empty))
	assert.Equal(t, a, empty.Union(a))
}

func TestBounds_IterationOrder(t *testing.T) {
	b := Bounds{Min: Cell{X: 1, Y: 1}, Max: Cell{X: 3, Y: 2}}
	cells := b.Cells()

	assert.Equal(t, []Cell{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 2}, {3, 2}}, cells)

	visited := 0
	b.Each(func(Cell) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited, "Each stops when fn returns false")
}

func TestBounds_CenteredAndEdges(t *testing.T) {
	b := Centered(Cell{X: 10, Y: 10}, 20, 20)
	assert.Equal(t, Bounds{Min: Cell{X: 0, Y: 0}, Max: Cell{X: 19, Y: 19}}, b)

	west, east, south, north := b.EdgeDistance(Cell{X: 17, Y: 3})
	assert.Equal(t, 17, west)
	assert.Equal(t, 2, east)
	assert.Equal(t, 3, south)
	assert.Equal(t, 16, north)
}

func TestDistances(t *testing.T) {
	a, b := Cell{X: 1, Y: 2}, Cell{X: 4, Y: -2}

	assert.Equal(t, 4, Chebyshev(a, b))
	assert.Equal(t, 25, DistSq(a, b))

	n := Neighbors4(Cell{})
	assert.ElementsMatch(t, []Cell{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}, n[:])
}

func TestTerrainType_Text(t *testing.T) {
	for typ, want := range map[TerrainType]string{Grass: "grass", Water: "water", Ungenerated: "ungenerated"} {
		text, err := typ.MarshalText()
		assert.NoError(t, err)
		assert.Equal(t, want, string(text))
	}
}
