package terrain

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/connectivity"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/noise"
	"github.com/VoidMesh/terrain/internal/random"
	"github.com/VoidMesh/terrain/internal/safezone"
	"github.com/VoidMesh/terrain/internal/smoothing"
	"github.com/VoidMesh/terrain/internal/streamer"
	"github.com/VoidMesh/terrain/internal/vegetation"
	"github.com/VoidMesh/terrain/internal/water"
)

var (
	ErrAlreadyGenerated = errors.New("terrain: map already generated")
	ErrNotGenerated     = errors.New("terrain: map not generated yet")
)

// Random stream salts, one per consumer.
const (
	saltWater int64 = iota + 1
	saltVegetation
)

// WalkabilityQuery is the read-only surface used by spawn placement and movement.
type WalkabilityQuery interface {
	IsWalkable(p grid.Vec2) bool
	WorldToGrid(p grid.Vec2) grid.Cell
	GridToWorld(c grid.Cell) grid.Vec2
}

// Report summarizes the initial map build.
type Report struct {
	Seed       int64         `json:"seed"`
	Bounds     grid.Bounds   `json:"bounds"`
	PlayerCell grid.Cell     `json:"player_cell"`
	Clusters   int           `json:"clusters"`
	WaterCells int           `json:"water_cells"`
	Smoothed   int           `json:"smoothed"`
	Bridged    int           `json:"bridged"`
	Flooded    int           `json:"flooded"`
	Cleared    int           `json:"cleared"`
	Vegetation int           `json:"vegetation"`
	Duration   time.Duration `json:"duration"`
}

// Stats is a point-in-time view of the session.
type Stats struct {
	Seed       int64       `json:"seed"`
	Generated  bool        `json:"generated"`
	Bounds     grid.Bounds `json:"bounds"`
	Pending    grid.Bounds `json:"pending"`
	Expanding  bool        `json:"expanding"`
	Phase      string      `json:"phase"`
	Expansions int         `json:"expansions"`
	GrassCells int         `json:"grass_cells"`
	WaterCells int         `json:"water_cells"`
	Clusters   int         `json:"clusters"`
	Vegetation int         `json:"vegetation"`
	Chunks     int         `json:"chunks"`

	LastExpansion *streamer.Expansion `json:"last_expansion,omitempty"`
}

// Service owns one terrain session: the grid, the generation passes and the streamer.
// It is safe for concurrent use; the ticker writes while HTTP handlers read.
type Service struct {
	mu sync.RWMutex

	cfg    config.TerrainConfig
	seed   int64
	frame  grid.Frame
	logger logging.LoggerInterface

	water    *water.Generator
	smoother *smoothing.Smoother
	enforcer *connectivity.Enforcer
	carver   *safezone.Carver
	placer   *vegetation.Placer

	grid      *grid.Grid
	streamer  *streamer.Streamer
	listeners []streamer.CommitListener
	report    Report
}

// NewService validates and normalizes cfg and wires the generation passes. The map itself
// is built by Generate.
func NewService(cfg config.TerrainConfig, logger logging.LoggerInterface, listeners ...streamer.CommitListener) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid terrain config: %w", err)
	}
	cfg = cfg.Normalize()

	frame, err := grid.NewFrame(cfg.TileSize, grid.Vec2{X: cfg.OriginX, Y: cfg.OriginY})
	if err != nil {
		return nil, fmt.Errorf("invalid terrain config: %w", err)
	}

	logger = logging.OrNop(logger)
	seed := cfg.ResolveSeed()
	if cfg.Seed == 0 {
		logger.Info("No seed configured, using time-based seed", "seed", seed)
	}

	noiseGen := noise.NewGenerator(seed, cfg.NoiseScale)
	smoother := smoothing.NewSmoother(cfg.SmoothingIterations, logger)

	s := &Service{
		cfg:       cfg,
		seed:      seed,
		frame:     frame,
		logger:    logger.With("component", "terrain-service"),
		water:     water.NewGenerator(water.ParamsFromConfig(cfg), noiseGen, random.Derive(seed, saltWater), logger),
		smoother:  smoother,
		enforcer:  connectivity.NewEnforcer(cfg.MinClusterSize, logger),
		carver:    safezone.NewCarver(cfg.SafeZoneRadius, cfg.SafeZoneRing, smoother, logger),
		placer:    vegetation.NewPlacer(vegetation.ParamsFromConfig(cfg, seed), random.Derive(seed, saltVegetation), logger),
		listeners: listeners,
	}
	return s, nil
}

// Config returns the normalized configuration.
func (s *Service) Config() config.TerrainConfig {
	return s.cfg
}

func (s *Service) Seed() int64 {
	return s.seed
}

// Generate builds the initial MapWidth x MapHeight map centred on the player and commits it.
func (s *Service) Generate(player grid.Vec2) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid != nil {
		return Report{}, ErrAlreadyGenerated
	}

	start := time.Now()
	cell := s.frame.WorldToGrid(player)
	bounds := grid.Centered(cell, s.cfg.MapWidth, s.cfg.MapHeight)

	g, err := grid.New(bounds, s.frame.TileSize, s.frame.Origin)
	if err != nil {
		return Report{}, fmt.Errorf("failed to allocate grid: %w", err)
	}
	g.Fill(bounds, grid.Grass)

	report := Report{Seed: s.seed, Bounds: bounds, PlayerCell: cell}
	zone := s.carver.ZoneAt(cell)

	wr := s.water.Generate(g, bounds, []water.Zone{
		water.CircleZone{Center: cell, Radius: zone.Radius + s.cfg.MaxWaterRadius},
	})
	report.Clusters = len(wr.Clusters)

	report.Smoothed = s.smoother.Smooth(g, bounds).Changed

	cr := s.enforcer.Enforce(g, bounds)
	report.Bridged, report.Flooded = cr.Bridged, cr.Flooded

	carved := s.carver.CarveAt(g, cell)
	report.Cleared = carved.Cleared

	second := s.enforcer.EnforceProtected(g, bounds, carved.Zone)
	report.Bridged += second.Bridged
	report.Flooded += second.Flooded

	report.Vegetation = len(s.placer.Place(g, bounds.Cells(), cell))
	report.WaterCells = g.Count(bounds, grid.Water)
	report.Duration = time.Since(start)

	s.grid = g
	s.streamer = streamer.New(g, bounds, streamer.ParamsFromConfig(s.cfg), streamer.Pipeline{
		Water:    s.water,
		Smoother: s.smoother,
		Enforcer: s.enforcer,
		Carver:   s.carver,
		Placer:   s.placer,
	}, s.logger, s.listeners...)
	s.report = report

	s.logger.Info("Initial map generated",
		"seed", s.seed, "bounds", bounds.String(), "clusters", report.Clusters,
		"water_cells", report.WaterCells, "vegetation", report.Vegetation, "duration", report.Duration)
	return report, nil
}

// Report returns the summary of the initial build.
func (s *Service) Report() Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Generated reports whether Generate has run.
func (s *Service) Generated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid != nil
}

// AddListener registers l for future expansion commits.
func (s *Service) AddListener(l streamer.CommitListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	if s.streamer != nil {
		s.streamer.AddListener(l)
	}
}

// Tick advances streaming by one simulation tick for the given player position.
func (s *Service) Tick(player grid.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return
	}
	s.streamer.Tick(player)
}

// Check runs an immediate edge check.
func (s *Service) Check(player grid.Vec2) (streamer.Trigger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return streamer.Trigger{}, ErrNotGenerated
	}
	return s.streamer.Check(player), nil
}

// Drain runs any in-flight expansion to its commit.
func (s *Service) Drain() (streamer.Expansion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return streamer.Expansion{}, false
	}
	return s.streamer.Drain()
}

// Bounds returns the committed bounds. It is empty before Generate.
func (s *Service) Bounds() grid.Bounds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed()
}

func (s *Service) committed() grid.Bounds {
	if s.streamer == nil {
		return grid.Bounds{Min: grid.Cell{X: 0, Y: 0}, Max: grid.Cell{X: -1, Y: -1}}
	}
	return s.streamer.CurrentBounds()
}

// IsExpanding reports whether an expansion is in flight.
func (s *Service) IsExpanding() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streamer != nil && s.streamer.IsExpanding()
}

// IsWalkable reports whether the world position lies on committed Grass.
func (s *Service) IsWalkable(p grid.Vec2) bool {
	return s.IsCellWalkable(s.frame.WorldToGrid(p))
}

// IsCellWalkable reports whether c is committed Grass.
func (s *Service) IsCellWalkable(c grid.Cell) bool {
	return s.Cell(c) == grid.Grass
}

// Cell returns the terrain at c, or Ungenerated outside the committed bounds.
func (s *Service) Cell(c grid.Cell) grid.TerrainType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.grid == nil || !s.committed().Contains(c) {
		return grid.Ungenerated
	}
	return s.grid.Get(c)
}

func (s *Service) WorldToGrid(p grid.Vec2) grid.Cell {
	return s.frame.WorldToGrid(p)
}

func (s *Service) GridToWorld(c grid.Cell) grid.Vec2 {
	return s.frame.GridToWorld(c)
}

func (s *Service) Frame() grid.Frame {
	return s.frame
}

// Snapshot returns the committed tiles inside b.
func (s *Service) Snapshot(b grid.Bounds) []grid.Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.grid == nil {
		return nil
	}
	return s.grid.Snapshot(b.Intersect(s.committed()))
}

// Vegetation returns every placed instance.
func (s *Service) Vegetation() []vegetation.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placer.Instances()
}

// Clusters returns the recorded water cluster centers.
func (s *Service) Clusters() []grid.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.water.Centers()
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Seed:       s.seed,
		Generated:  s.grid != nil,
		Phase:      streamer.PhaseIdle.String(),
		Clusters:   len(s.water.Centers()),
		Vegetation: s.placer.Len(),
	}
	if s.grid == nil {
		return stats
	}

	bounds := s.committed()
	stats.Bounds = bounds
	stats.Pending = s.streamer.PendingBounds()
	stats.Expanding = s.streamer.IsExpanding()
	stats.Phase = s.streamer.Phase().String()
	stats.Expansions = s.streamer.Committed()
	stats.GrassCells = s.grid.Count(bounds, grid.Grass)
	stats.WaterCells = s.grid.Count(bounds, grid.Water)
	stats.Chunks = s.grid.ChunkCount()
	if last, ok := s.streamer.LastExpansion(); ok {
		stats.LastExpansion = &last
	}
	return stats
}
