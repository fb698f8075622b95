package safezone

import (
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/smoothing"
)

// Zone is the bubble around the player that must stay Grass.
type Zone struct {
	Center grid.Cell `json:"center"`
	Radius int       `json:"radius"`
}

// Contains reports whether c is within the zone (Euclidean).
func (z Zone) Contains(c grid.Cell) bool {
	return grid.DistSq(z.Center, c) <= z.Radius*z.Radius
}

// Bounds returns the square enclosing the zone.
func (z Zone) Bounds() grid.Bounds {
	return grid.Bounds{
		Min: z.Center.Add(-z.Radius, -z.Radius),
		Max: z.Center.Add(z.Radius, z.Radius),
	}
}

// Result summarizes a carve.
type Result struct {
	Zone Zone
	// Reach bounds every cell the carve may have changed, ring included.
	Reach       grid.Bounds
	Cleared     int
	RingChanged int
}

// Carver clears water around the player and softens the rim of the cut.
type Carver struct {
	radius    int
	ringWidth int
	smoother  *smoothing.Smoother
	logger    logging.LoggerInterface
}

func NewCarver(radius, ringWidth int, smoother *smoothing.Smoother, logger logging.LoggerInterface) *Carver {
	return &Carver{
		radius:    max(radius, 0),
		ringWidth: max(ringWidth, 0),
		smoother:  smoother,
		logger:    logging.OrNop(logger).With("component", "safe-zone-carver"),
	}
}

func (c *Carver) Radius() int {
	return c.radius
}

// ZoneAt returns the safe zone centred on cell.
func (c *Carver) ZoneAt(cell grid.Cell) Zone {
	return Zone{Center: cell, Radius: c.radius}
}

// Carve clears the zone around the player's world position.
func (c *Carver) Carve(g *grid.Grid, player grid.Vec2) Result {
	return c.CarveAt(g, g.WorldToGrid(player))
}

// CarveAt turns every Water cell within the radius of center into Grass, then smooths the
// ring (radius, radius+ringWidth]. Running it again changes nothing inside the radius.
func (c *Carver) CarveAt(g *grid.Grid, center grid.Cell) Result {
	zone := c.ZoneAt(center)
	result := Result{Zone: zone, Reach: zone.Bounds().Outset(c.ringWidth).Intersect(g.Bounds())}

	zone.Bounds().Intersect(g.Bounds()).Each(func(cell grid.Cell) bool {
		if zone.Contains(cell) && g.Get(cell) == grid.Water {
			g.Set(cell, grid.Grass)
			result.Cleared++
		}
		return true
	})

	if c.ringWidth > 0 && c.smoother != nil {
		inner := c.radius * c.radius
		outer := (c.radius + c.ringWidth) * (c.radius + c.ringWidth)
		ring := zone.Bounds().Outset(c.ringWidth)
		rs := c.smoother.SmoothWhere(g, ring, func(cell grid.Cell) bool {
			d := grid.DistSq(center, cell)
			return d > inner && d <= outer
		})
		result.RingChanged = rs.Changed
	}

	c.logger.Debug("Safe zone carved",
		"center", center.String(), "radius", c.radius, "cleared", result.Cleared, "ring_changed", result.RingChanged)
	return result
}
