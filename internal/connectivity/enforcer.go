package connectivity

import (
	"sort"
	"time"

	"github.com/katalvlaran/lvlath/gridgraph"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
)

const (
	waterValue = 0
	landValue  = 1
)

// Protected marks cells whose component must never be flooded.
type Protected interface {
	Contains(c grid.Cell) bool
}

// Settled reports whether a cell outside the enforced area already belongs to the main
// Grass component.
type Settled func(c grid.Cell) bool

// Result summarizes one enforcement pass.
type Result struct {
	Area         grid.Bounds
	Components   int
	Anchored     int
	MainSize     int
	Bridged      int
	Flooded      int
	CarvedCells  int
	FloodedCells int
	Widened      bool
	Duration     time.Duration
}

// Enforcer repairs Grass topology so that all Grass forms one 4-connected component.
type Enforcer struct {
	minClusterSize int
	logger         logging.LoggerInterface
}

func NewEnforcer(minClusterSize int, logger logging.LoggerInterface) *Enforcer {
	if minClusterSize < 1 {
		minClusterSize = 1
	}
	return &Enforcer{
		minClusterSize: minClusterSize,
		logger:         logging.OrNop(logger).With("component", "connectivity-enforcer"),
	}
}

type component struct {
	cells     []gridgraph.Cell
	protected bool
	anchored  bool
}

// Enforce bridges or floods every non-main component inside area.
func (e *Enforcer) Enforce(g *grid.Grid, area grid.Bounds) Result {
	return e.EnforceProtected(g, area, nil)
}

// EnforceProtected is Enforce, except that components touching protect are always bridged.
// The largest component inside area is the main one.
func (e *Enforcer) EnforceProtected(g *grid.Grid, area grid.Bounds, protect Protected) Result {
	return e.EnforceWithin(g, area, nil, protect)
}

// EnforceWithin repairs only area. Every component with a cell next to settled Grass
// outside area joins the main component, so the rest of the grid is never scanned. When
// nothing in area reaches settled Grass the pass widens to the whole grid.
func (e *Enforcer) EnforceWithin(g *grid.Grid, area grid.Bounds, settled Settled, protect Protected) Result {
	start := time.Now()
	area = area.Intersect(g.Bounds())
	result := Result{Area: area}
	if area.Empty() {
		return result
	}

	gg, err := gridgraph.NewGridGraph(landValues(g, area), gridgraph.DefaultGridOptions())
	if err != nil {
		e.logger.Error("Failed to build grid graph", "area", area.String(), "error", err)
		return result
	}

	comps := label(g, gg, area, settled, protect)
	result.Components = len(comps)
	for _, comp := range comps {
		if comp.anchored {
			result.Anchored++
		}
	}
	if settled != nil && result.Anchored == 0 && area != g.Bounds() {
		wide := e.EnforceWithin(g, g.Bounds(), nil, protect)
		wide.Widened = true
		e.logger.Debug("Connectivity widened to the whole grid", "area", area.String())
		return wide
	}
	if len(comps) <= 1 {
		if len(comps) == 1 {
			result.MainSize = len(comps[0].cells)
		}
		result.Duration = time.Since(start)
		return result
	}

	// Anchored components first, then largest first; ties keep discovery order.
	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].anchored != comps[j].anchored {
			return comps[i].anchored
		}
		return len(comps[i].cells) > len(comps[j].cells)
	})

	inMain := make([]bool, area.Area())
	var mainCells []gridgraph.Cell
	join := func(cells []gridgraph.Cell) {
		for _, c := range cells {
			idx := c.Y*gg.Width + c.X
			if !inMain[idx] {
				inMain[idx] = true
				mainCells = append(mainCells, c)
			}
		}
	}

	rest := comps[1:]
	join(comps[0].cells)
	if comps[0].anchored {
		for len(rest) > 0 && rest[0].anchored {
			join(rest[0].cells)
			rest = rest[1:]
		}
	}
	result.MainSize = len(mainCells)

	for _, comp := range rest {
		if touchesMain(gg, comp, inMain) {
			join(comp.cells)
			continue
		}
		if len(comp.cells) >= e.minClusterSize || comp.protected {
			path, _, err := gg.ExpandIsland(comp.cells, mainCells)
			if err == nil {
				result.CarvedCells += carve(g, gg, area, path)
				join(comp.cells)
				join(path)
				result.Bridged++
				continue
			}
			e.logger.Warn("No bridge found", "area", area.String(), "size", len(comp.cells), "error", err)
			if comp.protected {
				continue
			}
		}
		for _, c := range comp.cells {
			g.Set(toGrid(area, c), grid.Water)
			gg.CellValues[c.Y][c.X] = waterValue
		}
		result.Flooded++
		result.FloodedCells += len(comp.cells)
	}

	result.Duration = time.Since(start)
	e.logger.Debug("Connectivity enforced",
		"area", area.String(), "components", result.Components, "anchored", result.Anchored,
		"main_size", result.MainSize, "bridged", result.Bridged, "flooded", result.Flooded,
		"carved_cells", result.CarvedCells, "duration", result.Duration)
	return result
}

// landValues maps area onto the gridgraph value matrix: Grass is land, everything else water.
func landValues(g *grid.Grid, area grid.Bounds) [][]int {
	values := make([][]int, area.Height())
	for y := range values {
		row := make([]int, area.Width())
		for x := range row {
			if g.Get(grid.Cell{X: area.Min.X + x, Y: area.Min.Y + y}) == grid.Grass {
				row[x] = landValue
			}
		}
		values[y] = row
	}
	return values
}

func toGrid(area grid.Bounds, c gridgraph.Cell) grid.Cell {
	return grid.Cell{X: area.Min.X + c.X, Y: area.Min.Y + c.Y}
}

// label finds the 4-connected Grass components of area in row-major discovery order.
func label(g *grid.Grid, gg *gridgraph.GridGraph, area grid.Bounds, settled Settled, protect Protected) []component {
	found := gg.ConnectedComponents()[landValue]
	comps := make([]component, len(found))
	for i, cells := range found {
		comp := component{cells: cells}
		for _, c := range cells {
			cell := toGrid(area, c)
			if protect != nil && !comp.protected && protect.Contains(cell) {
				comp.protected = true
			}
			if settled != nil && !comp.anchored && reachesSettled(g, area, cell, settled) {
				comp.anchored = true
			}
		}
		comps[i] = comp
	}
	return comps
}

func reachesSettled(g *grid.Grid, area grid.Bounds, c grid.Cell, settled Settled) bool {
	for _, nb := range grid.Neighbors4(c) {
		if !area.Contains(nb) && settled(nb) && g.Get(nb) == grid.Grass {
			return true
		}
	}
	return false
}

func touchesMain(gg *gridgraph.GridGraph, comp component, inMain []bool) bool {
	for _, c := range comp.cells {
		for _, d := range gg.NeighborOffsets() {
			x, y := c.X+d[0], c.Y+d[1]
			if gg.InBounds(x, y) && inMain[y*gg.Width+x] {
				return true
			}
		}
	}
	return false
}

// carve turns the water cells of a bridge path into Grass and returns how many changed.
func carve(g *grid.Grid, gg *gridgraph.GridGraph, area grid.Bounds, path []gridgraph.Cell) int {
	carved := 0
	for _, c := range path {
		cell := toGrid(area, c)
		if g.Get(cell) == grid.Grass {
			continue
		}
		g.Set(cell, grid.Grass)
		gg.CellValues[c.Y][c.X] = landValue
		carved++
	}
	return carved
}

// Components returns the 4-connected Grass components of area, largest first.
func Components(g *grid.Grid, area grid.Bounds) [][]grid.Cell {
	area = area.Intersect(g.Bounds())
	if area.Empty() {
		return nil
	}
	gg, err := gridgraph.NewGridGraph(landValues(g, area), gridgraph.DefaultGridOptions())
	if err != nil {
		return nil
	}
	comps := label(g, gg, area, nil, nil)
	sort.SliceStable(comps, func(i, j int) bool {
		return len(comps[i].cells) > len(comps[j].cells)
	})
	out := make([][]grid.Cell, len(comps))
	for i, comp := range comps {
		cells := make([]grid.Cell, len(comp.cells))
		for k, c := range comp.cells {
			cells[k] = toGrid(area, c)
		}
		out[i] = cells
	}
	return out
}
