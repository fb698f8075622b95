package grid

import "fmt"

// TerrainType is the content of one cell. The zero value is Ungenerated.
type TerrainType uint8

const (
	Ungenerated TerrainType = iota
	Grass
	Water
)

func (t TerrainType) String() string {
	switch t {
	case Grass:
		return "grass"
	case Water:
		return "water"
	default:
		return "ungenerated"
	}
}

// MarshalText lets snapshots render terrain types by name.
func (t TerrainType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Chebyshev returns max(|dx|,|dy|).
func Chebyshev(a, b Cell) int {
	return max(absInt(a.X-b.X), absInt(a.Y-b.Y))
}

// DistSq returns the squared Euclidean distance between two cells.
func DistSq(a, b Cell) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Vec2 is a position in world space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tile is the presentation data contract: one cell and its terrain.
type Tile struct {
	Cell Cell        `json:"cell"`
	Type TerrainType `json:"type"`
}

// Offsets4 are the orthogonal neighbour offsets in N, E, S, W order.
var Offsets4 = [4]Cell{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}

// Neighbors4 returns the four orthogonal neighbours of c.
func Neighbors4(c Cell) [4]Cell {
	var out [4]Cell
	for i, o := range Offsets4 {
		out[i] = c.Add(o.X, o.Y)
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
