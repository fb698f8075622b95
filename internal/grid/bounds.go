package grid

import "fmt"

// Bounds is an inclusive rectangle of cells. A Bounds with Max < Min on either axis is empty.
type Bounds struct {
	Min Cell `json:"min"`
	Max Cell `json:"max"`
}

// NewBounds builds the rectangle spanning both corners regardless of their order.
func NewBounds(a, b Cell) Bounds {
	return Bounds{
		Min: Cell{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Cell{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Centered returns a width x height rectangle whose centre cell is c.
func Centered(c Cell, width, height int) Bounds {
	minX := c.X - width/2
	minY := c.Y - height/2
	return Bounds{
		Min: Cell{X: minX, Y: minY},
		Max: Cell{X: minX + width - 1, Y: minY + height - 1},
	}
}

func (b Bounds) Empty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

func (b Bounds) Width() int {
	if b.Empty() {
		return 0
	}
	return b.Max.X - b.Min.X + 1
}

func (b Bounds) Height() int {
	if b.Empty() {
		return 0
	}
	return b.Max.Y - b.Min.Y + 1
}

func (b Bounds) Area() int {
	return b.Width() * b.Height()
}

func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X && c.Y >= b.Min.Y && c.Y <= b.Max.Y
}

// Inset shrinks b by n cells on every side. The result may be empty.
func (b Bounds) Inset(n int) Bounds {
	return Bounds{
		Min: Cell{X: b.Min.X + n, Y: b.Min.Y + n},
		Max: Cell{X: b.Max.X - n, Y: b.Max.Y - n},
	}
}

// Outset grows b by n cells on every side.
func (b Bounds) Outset(n int) Bounds {
	return b.Inset(-n)
}

// Intersect returns the overlap of b and o, possibly empty.
func (b Bounds) Intersect(o Bounds) Bounds {
	return Bounds{
		Min: Cell{X: max(b.Min.X, o.Min.X), Y: max(b.Min.Y, o.Min.Y)},
		Max: Cell{X: min(b.Max.X, o.Max.X), Y: min(b.Max.Y, o.Max.Y)},
	}
}

// Union returns the smallest rectangle containing both.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Bounds{
		Min: Cell{X: min(b.Min.X, o.Min.X), Y: min(b.Min.Y, o.Min.Y)},
		Max: Cell{X: max(b.Max.X, o.Max.X), Y: max(b.Max.Y, o.Max.Y)},
	}
}

// Each visits every cell in row-major order. Returning false stops the walk.
func (b Bounds) Each(fn func(c Cell) bool) {
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			if !fn(Cell{X: x, Y: y}) {
				return
			}
		}
	}
}

// Cells lists every cell in row-major order.
func (b Bounds) Cells() []Cell {
	if b.Empty() {
		return nil
	}
	out := make([]Cell, 0, b.Area())
	b.Each(func(c Cell) bool {
		out = append(out, c)
		return true
	})
	return out
}

// EdgeDistance returns the number of cells between c and the nearest edge of b along each
// side: west, east, south, north.
func (b Bounds) EdgeDistance(c Cell) (west, east, south, north int) {
	return c.X - b.Min.X, b.Max.X - c.X, c.Y - b.Min.Y, b.Max.Y - c.Y
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%s..%s]", b.Min, b.Max)
}
