package water

import (
	"fmt"
	"math"
	"time"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/random"
	"github.com/VoidMesh/terrain/internal/spatial"
)

// Generator places water clusters into regions of a grid. Accepted centers are kept for the
// whole session so later regions respect spacing against earlier ones.
type Generator struct {
	params  Params
	noise   NoiseField
	rnd     random.GeneratorInterface
	logger  logging.LoggerInterface
	centers *spatial.Hash[int]
	placed  []grid.Cell
}

// NewGenerator creates a water generator with dependency injection.
func NewGenerator(params Params, noise NoiseField, rnd random.GeneratorInterface, logger logging.LoggerInterface) *Generator {
	componentLogger := logging.OrNop(logger).With("component", "water-generator")
	componentLogger.Debug("Creating new water generator",
		"min_radius", params.MinRadius, "max_radius", params.MaxRadius,
		"circularity", params.Circularity, "min_spacing", params.MinSpacing)

	return &Generator{
		params:  params,
		noise:   noise,
		rnd:     rnd,
		logger:  componentLogger,
		centers: spatial.New[int](max(params.MinSpacing, 1)),
	}
}

func (g *Generator) Params() Params {
	return g.params
}

// Centers returns every accepted cluster center in acceptance order.
func (g *Generator) Centers() []grid.Cell {
	out := make([]grid.Cell, len(g.placed))
	copy(out, g.placed)
	return out
}

// Generate fills region with water clusters until the water fraction target is met or the
// attempt budget runs out. A region too small for the configured shape is skipped.
func (g *Generator) Generate(gr *grid.Grid, region grid.Bounds, zones []Zone) Result {
	start := time.Now()
	region = region.Intersect(gr.Bounds())
	result := Result{Region: region}
	logger := g.logger.With("region", region.String())

	if region.Empty() {
		result.Skipped = true
		logger.Debug("Skipping empty region")
		return result
	}

	result.Target = int(math.Round(g.params.WaterFraction * float64(region.Area())))
	if result.Target <= 0 {
		logger.Debug("Water target is zero, nothing to place")
		return result
	}

	need := g.params.MinRegionSpan()
	sampling := region.Inset(g.params.MaxRadius + g.params.BorderBuffer)
	if region.Width() < need || region.Height() < need || sampling.Empty() {
		result.Skipped = true
		logger.Warn("Region cannot fit a water cluster, skipping",
			"error", ErrConstraintUnsatisfiable, "width", region.Width(), "height", region.Height(), "required", need)
		return result
	}

	result.WaterCells = gr.Count(region, grid.Water)
	for result.Attempts < g.params.MaxAttempts && result.WaterCells < result.Target {
		result.Attempts++

		center := grid.Cell{
			X: random.Range(g.rnd, sampling.Min.X, sampling.Max.X),
			Y: random.Range(g.rnd, sampling.Min.Y, sampling.Max.Y),
		}
		if err := g.validate(region, center, zones); err != nil {
			continue
		}
		if !g.acceptByNoise(gr, center) {
			continue
		}

		cluster, added := g.place(gr, center)
		if len(cluster.Cells) == 0 {
			continue
		}
		result.Clusters = append(result.Clusters, cluster)
		result.WaterCells += added
	}

	logger.Debug("Water generation completed",
		"clusters", len(result.Clusters), "water_cells", result.WaterCells, "target", result.Target,
		"attempts", result.Attempts, "duration", time.Since(start))
	if result.WaterCells < result.Target {
		logger.Debug("Water target not reached within attempt budget", "missing", result.Target-result.WaterCells)
	}
	return result
}

// PlaceAt places one cluster at an explicit center, bypassing the noise roll. It applies the
// same spacing, zone and boundary rules as Generate.
func (g *Generator) PlaceAt(gr *grid.Grid, region grid.Bounds, center grid.Cell, zones []Zone) (Cluster, error) {
	region = region.Intersect(gr.Bounds())
	if err := g.validate(region, center, zones); err != nil {
		g.logger.Debug("Cluster request rejected", "center", center.String(), "reason", err)
		return Cluster{}, err
	}
	cluster, _ := g.place(gr, center)
	if len(cluster.Cells) == 0 {
		return Cluster{}, fmt.Errorf("%w at %s", ErrEmptyCluster, center)
	}
	return cluster, nil
}

// Validate reports why a center would be rejected, or nil.
func (g *Generator) Validate(region grid.Bounds, center grid.Cell, zones []Zone) error {
	return g.validate(region, center, zones)
}

func (g *Generator) validate(region grid.Bounds, center grid.Cell, zones []Zone) error {
	if !region.Inset(g.params.MaxRadius).Contains(center) {
		return ErrClipsBoundary
	}
	if !region.Inset(g.params.MaxRadius + g.params.BorderBuffer).Contains(center) {
		return ErrForbidden
	}
	for _, z := range zones {
		if z != nil && z.Contains(center) {
			return ErrForbidden
		}
	}
	if g.tooClose(center) {
		return ErrTooClose
	}
	return nil
}

func (g *Generator) tooClose(center grid.Cell) bool {
	spacing := g.params.MinSpacing
	return g.centers.Any(center, spacing, func(e spatial.Entry[int]) bool {
		return grid.Chebyshev(e.Cell, center) < spacing
	})
}

func (g *Generator) acceptByNoise(gr *grid.Grid, center grid.Cell) bool {
	if g.noise == nil {
		return true
	}
	world := gr.GridToWorld(center)
	p := g.params.NoiseFloor + (1-g.params.NoiseFloor)*g.noise.Coherence(world.X, world.Y)
	return g.rnd.Float64() < p
}

// place builds the member set, stamps it and records the center.
func (g *Generator) place(gr *grid.Grid, center grid.Cell) (Cluster, int) {
	radius := g.sampleRadius()
	var cells []grid.Cell
	switch c := g.params.Circularity; {
	case c >= StrictCircularity:
		cells = discCells(center, radius)
	case c >= JitterCircularity:
		radius = g.jitterRadius(radius)
		cells = discCells(center, radius)
	default:
		cells = g.irregularCells(center, radius)
	}

	cluster := Cluster{
		ID:          len(g.placed) + 1,
		Center:      center,
		Radius:      radius,
		Circularity: g.params.Circularity,
		Cells:       cells,
	}
	if len(cells) == 0 {
		return cluster, 0
	}

	added := 0
	for _, c := range cells {
		if gr.Get(c) == grid.Grass {
			gr.Set(c, grid.Water)
			added++
		}
	}

	g.centers.Insert(center, cluster.ID)
	g.placed = append(g.placed, center)
	g.logger.Debug("Placed water cluster",
		"cluster_id", cluster.ID, "center", center.String(), "radius", radius, "cells", len(cells), "added", added)
	return cluster, added
}

func (g *Generator) sampleRadius() float64 {
	lo := float64(g.params.MinRadius)
	hi := float64(g.params.MaxRadius)
	if hi <= lo {
		return lo
	}
	return lo + g.rnd.Float64()*(hi-lo)
}

// jitterRadius perturbs the radius once per placement. Looser circularity allows more jitter.
func (g *Generator) jitterRadius(r float64) float64 {
	amplitude := r * (1 - g.params.Circularity) * 2
	r += (g.rnd.Float64()*2 - 1) * amplitude
	return clamp(r, 1, float64(g.params.MaxRadius))
}

// irregularCells builds an angularly modulated blob: a solid core, a quadratically decaying
// annulus, then a connectivity filter from the center.
func (g *Generator) irregularCells(center grid.Cell, r float64) []grid.Cell {
	irregularity := 1 - g.params.Circularity
	var amps [ControlPoints]float64
	for i := range amps {
		amps[i] = (g.rnd.Float64()*2 - 1) * irregularity * 0.6
	}

	core := CoreFraction * r
	rmax := float64(g.params.MaxRadius)
	box := grid.Bounds{
		Min: center.Add(-g.params.MaxRadius, -g.params.MaxRadius),
		Max: center.Add(g.params.MaxRadius, g.params.MaxRadius),
	}

	accepted := make(map[grid.Cell]bool)
	box.Each(func(c grid.Cell) bool {
		dx := float64(c.X - center.X)
		dy := float64(c.Y - center.Y)
		d := math.Hypot(dx, dy)
		if d <= core {
			accepted[c] = true
			return true
		}
		edge := clamp(r*(1+angularFactor(amps[:], math.Atan2(dy, dx))), core, rmax)
		if d > edge || edge-core <= 0 {
			return true
		}
		t := (d - core) / (edge - core)
		if g.rnd.Float64() < 1-t*t {
			accepted[c] = true
		}
		return true
	})

	return connectedFrom(center, accepted)
}

// angularFactor linearly interpolates the control amplitudes around the circle.
func angularFactor(amps []float64, theta float64) float64 {
	n := len(amps)
	t := (theta + math.Pi) / (2 * math.Pi) * float64(n)
	k0 := int(math.Floor(t)) % n
	k1 := (k0 + 1) % n
	frac := t - math.Floor(t)
	return amps[k0]*(1-frac) + amps[k1]*frac
}

// connectedFrom keeps the cells 4-connected to start through accepted cells, in BFS order.
func connectedFrom(start grid.Cell, accepted map[grid.Cell]bool) []grid.Cell {
	if !accepted[start] {
		return nil
	}
	seen := map[grid.Cell]bool{start: true}
	queue := []grid.Cell{start}
	for i := 0; i < len(queue); i++ {
		for _, n := range grid.Neighbors4(queue[i]) {
			if accepted[n] && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return queue
}

// discCells returns the cells within Euclidean distance r of center in row-major order.
func discCells(center grid.Cell, r float64) []grid.Cell {
	ri := int(math.Floor(r))
	box := grid.Bounds{Min: center.Add(-ri, -ri), Max: center.Add(ri, ri)}
	rsq := r * r
	var cells []grid.Cell
	box.Each(func(c grid.Cell) bool {
		if float64(grid.DistSq(c, center)) <= rsq {
			cells = append(cells, c)
		}
		return true
	})
	return cells
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
