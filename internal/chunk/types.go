package chunk

import (
	"strings"

	"github.com/VoidMesh/terrain/internal/grid"
)

// Direction is a set of bound sides. West/East move Min.X/Max.X, South/North move
// Min.Y/Max.Y.
type Direction uint8

const (
	West Direction = 1 << iota
	East
	South
	North

	None Direction = 0
	All            = West | East | South | North
)

func (d Direction) Has(o Direction) bool {
	return d&o != 0
}

func (d Direction) String() string {
	if d == None {
		return "none"
	}
	var parts []string
	for _, side := range []struct {
		dir  Direction
		name string
	}{{West, "west"}, {East, "east"}, {South, "south"}, {North, "north"}} {
		if d.Has(side.dir) {
			parts = append(parts, side.name)
		}
	}
	return strings.Join(parts, "+")
}

// Region is one rectangle of newly added cells. Side is the direction it was appended in.
type Region struct {
	Bounds grid.Bounds `json:"bounds"`
	Side   Direction   `json:"side"`
}

func (r Region) Area() int {
	return r.Bounds.Area()
}
