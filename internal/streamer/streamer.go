package streamer

import (
	"time"

	"github.com/google/uuid"

	"github.com/VoidMesh/terrain/internal/chunk"
	"github.com/VoidMesh/terrain/internal/connectivity"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/water"
)

type job struct {
	exp     Expansion
	next    grid.Bounds
	regions []chunk.Region
	region  int
	player  grid.Cell
}

// Streamer grows the generated bounds as the player nears an edge. An expansion is a phase
// machine advanced one phase per Step so the cost of a single tick stays bounded. Queries
// must use CurrentBounds: cells of an in-flight expansion are allocated in the grid but stay
// outside the committed bounds until the commit phase.
type Streamer struct {
	grid      *grid.Grid
	params    Params
	pipeline  Pipeline
	logger    logging.LoggerInterface
	listeners []CommitListener

	current    grid.Bounds
	expanding  bool
	phase      Phase
	job        *job
	sinceCheck int
	committed  int
	last       *Expansion
}

// New creates a streamer over g whose committed bounds start at current.
func New(g *grid.Grid, current grid.Bounds, params Params, pipeline Pipeline, logger logging.LoggerInterface, listeners ...CommitListener) *Streamer {
	params.TriggerDistance = max(params.TriggerDistance, 0)
	params.PreloadMargin = max(params.PreloadMargin, 0)
	params.ExpansionSize = max(params.ExpansionSize, 1)
	params.Halo = max(params.Halo, 0)
	params.CheckInterval = max(params.CheckInterval, 1)

	return &Streamer{
		grid:      g,
		params:    params,
		pipeline:  pipeline,
		logger:    logging.OrNop(logger).With("component", "map-streamer"),
		listeners: listeners,
		current:   current,
	}
}

// AddListener registers l for future commits.
func (s *Streamer) AddListener(l CommitListener) {
	s.listeners = append(s.listeners, l)
}

// CurrentBounds returns the committed bounds.
func (s *Streamer) CurrentBounds() grid.Bounds {
	return s.current
}

func (s *Streamer) IsExpanding() bool {
	return s.expanding
}

// Phase returns the phase the next Step will run.
func (s *Streamer) Phase() Phase {
	return s.phase
}

// PendingBounds returns the bounds being generated, or the committed bounds when idle.
func (s *Streamer) PendingBounds() grid.Bounds {
	if s.job == nil {
		return s.current
	}
	return s.job.next
}

// Committed returns the number of expansions committed this session.
func (s *Streamer) Committed() int {
	return s.committed
}

// LastExpansion returns the most recent committed expansion.
func (s *Streamer) LastExpansion() (Expansion, bool) {
	if s.last == nil {
		return Expansion{}, false
	}
	return *s.last, true
}

// Directions reports which edges of the committed bounds are within the trigger threshold
// of cell.
func (s *Streamer) Directions(cell grid.Cell) chunk.Direction {
	threshold := s.params.TriggerDistance + s.params.PreloadMargin
	west, east, south, north := s.current.EdgeDistance(cell)

	dirs := chunk.None
	if west <= threshold {
		dirs |= chunk.West
	}
	if east <= threshold {
		dirs |= chunk.East
	}
	if south <= threshold {
		dirs |= chunk.South
	}
	if north <= threshold {
		dirs |= chunk.North
	}
	return dirs
}

// Check starts an expansion toward every edge the player is close to. While an expansion is
// in flight the trigger is dropped.
func (s *Streamer) Check(player grid.Vec2) Trigger {
	cell := s.grid.WorldToGrid(player)
	trigger := Trigger{PlayerCell: cell}

	if s.expanding {
		trigger.Dropped = true
		s.logger.Debug("Trigger dropped", "reason", ErrExpansionInProgress, "player_cell", cell.String(), "phase", s.phase.String())
		return trigger
	}

	dirs := s.Directions(cell)
	if dirs == chunk.None {
		return trigger
	}

	next := chunk.Expand(s.current, dirs, s.params.ExpansionSize)
	trigger.Fired = true
	trigger.Directions = dirs
	trigger.Target = next

	s.job = &job{
		exp: Expansion{
			ID:         uuid.New(),
			Directions: dirs,
			Previous:   s.current,
			Bounds:     next,
			StartedAt:  time.Now(),
		},
		next:   next,
		player: cell,
	}
	s.expanding = true
	s.phase = PhasePrepare

	s.logger.Info("Expansion triggered",
		"expansion_id", s.job.exp.ID.String(), "directions", dirs.String(),
		"player_cell", cell.String(), "from", s.current.String(), "to", next.String())
	return trigger
}

// Tick advances the streamer by one simulation tick. An in-flight expansion runs one phase;
// otherwise the edges are checked every CheckInterval ticks.
func (s *Streamer) Tick(player grid.Vec2) {
	if s.expanding {
		s.job.player = s.grid.WorldToGrid(player)
		s.Step()
		return
	}

	s.sinceCheck++
	if s.sinceCheck < s.params.CheckInterval {
		return
	}
	s.sinceCheck = 0
	s.Check(player)
}

// Step runs the current phase of the in-flight expansion. It reports false when idle.
func (s *Streamer) Step() bool {
	if !s.expanding {
		return false
	}
	j := s.job
	j.exp.Ticks++

	switch s.phase {
	case PhasePrepare:
		s.prepare(j)
		s.phase = PhaseWater
	case PhaseWater:
		if j.region < len(j.regions) {
			s.generateWater(j, j.regions[j.region])
			j.region++
		}
		if j.region >= len(j.regions) {
			s.phase = PhaseSmooth
		}
	case PhaseSmooth:
		s.smooth(j)
		s.phase = PhaseConnect
	case PhaseConnect:
		s.connect(j)
		s.phase = PhaseSafeZone
	case PhaseSafeZone:
		s.carve(j)
		s.phase = PhaseVegetation
	case PhaseVegetation:
		s.seedVegetation(j)
		s.phase = PhaseCommit
	case PhaseCommit:
		s.commit(j)
	}
	return true
}

// Drain runs the in-flight expansion to its commit. It reports whether anything was
// committed.
func (s *Streamer) Drain() (Expansion, bool) {
	if !s.expanding {
		return Expansion{}, false
	}
	for s.expanding {
		s.Step()
	}
	return *s.last, true
}

func (s *Streamer) prepare(j *job) {
	s.grid.Grow(j.next)
	j.regions = chunk.Split(j.exp.Previous, j.next)
	for _, r := range j.regions {
		j.exp.NewCells += s.grid.Fill(r.Bounds, grid.Grass)
	}
	j.exp.Regions = j.regions

	s.logger.Debug("Expansion prepared",
		"expansion_id", j.exp.ID.String(), "regions", len(j.regions), "new_cells", j.exp.NewCells)
}

func (s *Streamer) generateWater(j *job, r chunk.Region) {
	if s.pipeline.Water == nil {
		return
	}
	result := s.pipeline.Water.Generate(s.grid, r.Bounds, s.waterZones(j))
	j.exp.Clusters += len(result.Clusters)
	j.exp.WaterCells += result.WaterCells
	if result.Skipped {
		j.exp.SkippedWater++
	}
}

// waterZones keeps cluster centers far enough from the player that no cluster reaches into
// the safe zone.
func (s *Streamer) waterZones(j *job) []water.Zone {
	if s.pipeline.Carver == nil {
		return nil
	}
	reach := s.pipeline.Carver.Radius() + s.pipeline.Water.Params().MaxRadius
	return []water.Zone{water.CircleZone{Center: j.player, Radius: reach}}
}

func (s *Streamer) smooth(j *job) {
	if s.pipeline.Smoother == nil {
		return
	}
	for _, r := range j.regions {
		result := s.pipeline.Smoother.Smooth(s.grid, r.Bounds.Outset(s.params.Halo))
		j.exp.Smoothed += result.Changed
	}
}

// connect repairs connectivity region by region. Each pass covers the region plus the
// smoothing halo and one more ring of cells, which are untouched committed cells; grass there
// is already connected, so nothing outside the new cells has to be scanned.
func (s *Streamer) connect(j *job) {
	if s.pipeline.Enforcer == nil {
		return
	}
	var protect connectivity.Protected
	if s.pipeline.Carver != nil {
		protect = s.pipeline.Carver.ZoneAt(j.player)
	}

	settled := []grid.Bounds{j.exp.Previous}
	for _, r := range j.regions {
		area := r.Bounds.Outset(s.params.Halo + 1)
		result := s.pipeline.Enforcer.EnforceWithin(s.grid, area, inAny(settled), protect)
		j.exp.Bridged += result.Bridged
		j.exp.Flooded += result.Flooded
		settled = append(settled, result.Area)
	}
}

func (s *Streamer) carve(j *job) {
	if s.pipeline.Carver == nil {
		return
	}
	result := s.pipeline.Carver.CarveAt(s.grid, j.player)
	j.exp.Cleared += result.Cleared

	// A carve that opened new grass can leave it cut off; repair around it with the zone protected.
	if (result.Cleared > 0 || result.RingChanged > 0) && s.pipeline.Enforcer != nil {
		window := s.grid.Bounds()
		second := s.pipeline.Enforcer.EnforceWithin(s.grid, result.Reach.Outset(1), window.Contains, result.Zone)
		j.exp.Bridged += second.Bridged
		j.exp.Flooded += second.Flooded
	}
}

func (s *Streamer) seedVegetation(j *job) {
	if s.pipeline.Placer == nil {
		return
	}
	placed := s.pipeline.Placer.Place(s.grid, chunk.Cells(j.regions), j.player)
	j.exp.Vegetation = len(placed)
}

func (s *Streamer) commit(j *job) {
	s.current = j.next
	s.expanding = false
	s.phase = PhaseIdle
	s.job = nil
	s.sinceCheck = 0
	s.committed++

	j.exp.Duration = time.Since(j.exp.StartedAt)
	exp := j.exp
	s.last = &exp

	s.logger.Info("Expansion committed",
		"expansion_id", exp.ID.String(), "directions", exp.Directions.String(), "bounds", exp.Bounds.String(),
		"new_cells", exp.NewCells, "clusters", exp.Clusters, "water_cells", exp.WaterCells,
		"vegetation", exp.Vegetation, "ticks", exp.Ticks, "duration", exp.Duration)

	for _, l := range s.listeners {
		l.OnCommit(exp)
	}
}

// inAny reports whether a cell lies in one of the rectangles.
func inAny(bounds []grid.Bounds) connectivity.Settled {
	return func(c grid.Cell) bool {
		for _, b := range bounds {
			if b.Contains(c) {
				return true
			}
		}
		return false
	}
}
