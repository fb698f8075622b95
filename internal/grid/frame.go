package grid

import (
	"fmt"
	"math"
)

// Frame maps between world positions and cells with a fixed tile size and origin offset.
type Frame struct {
	TileSize float64 `json:"tile_size"`
	Origin   Vec2    `json:"origin"`
}

// NewFrame validates the tile size.
func NewFrame(tileSize float64, origin Vec2) (Frame, error) {
	if tileSize <= 0 || math.IsNaN(tileSize) || math.IsInf(tileSize, 0) {
		return Frame{}, fmt.Errorf("%w: %v", ErrInvalidTileSize, tileSize)
	}
	return Frame{TileSize: tileSize, Origin: origin}, nil
}

// MaxCoord bounds cell coordinates produced by WorldToGrid on either axis. Positions further
// out, and NaN, saturate to ±MaxCoord so bounds arithmetic cannot overflow.
const MaxCoord = 1 << 30

// WorldToGrid maps a world position to the cell containing it.
func (f Frame) WorldToGrid(p Vec2) Cell {
	return Cell{
		X: toCoord((p.X - f.Origin.X) / f.TileSize),
		Y: toCoord((p.Y - f.Origin.Y) / f.TileSize),
	}
}

func toCoord(v float64) int {
	switch {
	case math.IsNaN(v), v >= MaxCoord:
		return MaxCoord
	case v <= -MaxCoord:
		return -MaxCoord
	}
	return int(math.Floor(v))
}

// GridToWorld maps a cell to the world position of its centre.
func (f Frame) GridToWorld(c Cell) Vec2 {
	return Vec2{
		X: f.Origin.X + (float64(c.X)+0.5)*f.TileSize,
		Y: f.Origin.Y + (float64(c.Y)+0.5)*f.TileSize,
	}
}
