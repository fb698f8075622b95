package chunk

import (
	"github.com/VoidMesh/terrain/internal/grid"
)

// Expand returns old grown by size cells on every side in d.
func Expand(old grid.Bounds, d Direction, size int) grid.Bounds {
	b := old
	if d.Has(West) {
		b.Min.X -= size
	}
	if d.Has(East) {
		b.Max.X += size
	}
	if d.Has(South) {
		b.Min.Y -= size
	}
	if d.Has(North) {
		b.Max.Y += size
	}
	return b
}

// Split enumerates the cells of next that are not in old as disjoint rectangles. West and
// East strips span the full new height and so own the corners; South and North strips span
// only the old width. next must contain old.
func Split(old, next grid.Bounds) []Region {
	var regions []Region
	if next.Min.X < old.Min.X {
		regions = append(regions, Region{
			Side: West,
			Bounds: grid.Bounds{
				Min: grid.Cell{X: next.Min.X, Y: next.Min.Y},
				Max: grid.Cell{X: old.Min.X - 1, Y: next.Max.Y},
			},
		})
	}
	if next.Max.X > old.Max.X {
		regions = append(regions, Region{
			Side: East,
			Bounds: grid.Bounds{
				Min: grid.Cell{X: old.Max.X + 1, Y: next.Min.Y},
				Max: grid.Cell{X: next.Max.X, Y: next.Max.Y},
			},
		})
	}
	if next.Min.Y < old.Min.Y {
		regions = append(regions, Region{
			Side: South,
			Bounds: grid.Bounds{
				Min: grid.Cell{X: old.Min.X, Y: next.Min.Y},
				Max: grid.Cell{X: old.Max.X, Y: old.Min.Y - 1},
			},
		})
	}
	if next.Max.Y > old.Max.Y {
		regions = append(regions, Region{
			Side: North,
			Bounds: grid.Bounds{
				Min: grid.Cell{X: old.Min.X, Y: old.Max.Y + 1},
				Max: grid.Cell{X: old.Max.X, Y: next.Max.Y},
			},
		})
	}
	return regions
}

// Cells flattens regions into one cell list in region order.
func Cells(regions []Region) []grid.Cell {
	total := 0
	for _, r := range regions {
		total += r.Area()
	}
	out := make([]grid.Cell, 0, total)
	for _, r := range regions {
		out = append(out, r.Bounds.Cells()...)
	}
	return out
}

// Contains reports whether c lies in any of the regions.
func Contains(regions []Region, c grid.Cell) bool {
	for _, r := range regions {
		if r.Bounds.Contains(c) {
			return true
		}
	}
	return false
}
