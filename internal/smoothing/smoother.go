package smoothing

import (
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
)

// GrassThreshold is the number of Grass 4-neighbours that turns a Water cell into Grass.
const GrassThreshold = 3

// Result summarizes a smoothing run.
type Result struct {
	Iterations int
	Changed    int
	Converged  bool
}

// Smoother erodes ragged or isolated water with a local majority rule.
type Smoother struct {
	maxIterations int
	logger        logging.LoggerInterface
}

func NewSmoother(maxIterations int, logger logging.LoggerInterface) *Smoother {
	if maxIterations < 1 {
		maxIterations = 1
	}
	return &Smoother{
		maxIterations: maxIterations,
		logger:        logging.OrNop(logger).With("component", "boundary-smoother"),
	}
}

// Smooth runs the rule over every cell of area.
func (s *Smoother) Smooth(g *grid.Grid, area grid.Bounds) Result {
	return s.SmoothWhere(g, area, nil)
}

// SmoothWhere runs the rule over cells of area accepted by pred (nil accepts all). Each
// pass decides all flips against the pre-pass state, then applies them.
func (s *Smoother) SmoothWhere(g *grid.Grid, area grid.Bounds, pred func(c grid.Cell) bool) Result {
	area = area.Intersect(g.Bounds())
	var result Result
	if area.Empty() {
		result.Converged = true
		return result
	}

	var flips []grid.Cell
	for result.Iterations < s.maxIterations {
		result.Iterations++
		flips = flips[:0]
		area.Each(func(c grid.Cell) bool {
			if pred != nil && !pred(c) {
				return true
			}
			if ShouldFlip(g, c) {
				flips = append(flips, c)
			}
			return true
		})
		if len(flips) == 0 {
			result.Converged = true
			break
		}
		for _, c := range flips {
			g.Set(c, grid.Grass)
		}
		result.Changed += len(flips)
	}

	s.logger.Debug("Smoothing pass finished",
		"area", area.String(), "iterations", result.Iterations, "changed", result.Changed, "converged", result.Converged)
	return result
}

// ShouldFlip reports whether c is Water with at least GrassThreshold Grass neighbours.
// Neighbours outside the grid count as Grass.
func ShouldFlip(g *grid.Grid, c grid.Cell) bool {
	if g.Get(c) != grid.Water {
		return false
	}
	return GrassNeighbors(g, c) >= GrassThreshold
}

// GrassNeighbors counts the Grass 4-neighbours of c, treating out-of-grid cells as Grass.
func GrassNeighbors(g *grid.Grid, c grid.Cell) int {
	window := g.Bounds()
	n := 0
	for _, nb := range grid.Neighbors4(c) {
		if !window.Contains(nb) || g.Get(nb) == grid.Grass {
			n++
		}
	}
	return n
}
