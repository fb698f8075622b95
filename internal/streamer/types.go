package streamer

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/VoidMesh/terrain/internal/chunk"
	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/connectivity"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/safezone"
	"github.com/VoidMesh/terrain/internal/smoothing"
	"github.com/VoidMesh/terrain/internal/vegetation"
	"github.com/VoidMesh/terrain/internal/water"
)

// ErrExpansionInProgress is reported when a trigger arrives while an expansion is in flight.
// It is informational; the trigger is dropped and re-evaluated on the next check.
var ErrExpansionInProgress = errors.New("streamer: expansion already in progress")

// Phase is the step an in-flight expansion will run next.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrepare
	PhaseWater
	PhaseSmooth
	PhaseConnect
	PhaseSafeZone
	PhaseVegetation
	PhaseCommit
)

var phaseNames = map[Phase]string{
	PhaseIdle:       "idle",
	PhasePrepare:    "prepare",
	PhaseWater:      "water",
	PhaseSmooth:     "smooth",
	PhaseConnect:    "connect",
	PhaseSafeZone:   "safe_zone",
	PhaseVegetation: "vegetation",
	PhaseCommit:     "commit",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Params controls when and by how much the bounds grow.
type Params struct {
	TriggerDistance int
	PreloadMargin   int
	ExpansionSize   int
	Halo            int
	CheckInterval   int
}

// ParamsFromConfig extracts the streaming parameters from a normalized terrain config.
func ParamsFromConfig(cfg config.TerrainConfig) Params {
	return Params{
		TriggerDistance: cfg.TriggerDistance,
		PreloadMargin:   cfg.PreloadMargin,
		ExpansionSize:   cfg.ExpansionSize,
		Halo:            cfg.ExpansionHalo,
		CheckInterval:   cfg.CheckInterval,
	}
}

// Pipeline is the set of generation passes run over every new region.
type Pipeline struct {
	Water    *water.Generator
	Smoother *smoothing.Smoother
	Enforcer *connectivity.Enforcer
	Carver   *safezone.Carver
	Placer   *vegetation.Placer
}

// Trigger is the outcome of one edge check.
type Trigger struct {
	Fired      bool            `json:"fired"`
	Dropped    bool            `json:"dropped"`
	Directions chunk.Direction `json:"directions"`
	PlayerCell grid.Cell       `json:"player_cell"`
	Target     grid.Bounds     `json:"target"`
}

// Expansion summarizes one committed growth of the bounds.
type Expansion struct {
	ID           uuid.UUID       `json:"id"`
	Directions   chunk.Direction `json:"directions"`
	Previous     grid.Bounds     `json:"previous"`
	Bounds       grid.Bounds     `json:"bounds"`
	Regions      []chunk.Region  `json:"regions"`
	NewCells     int             `json:"new_cells"`
	Clusters     int             `json:"clusters"`
	WaterCells   int             `json:"water_cells"`
	SkippedWater int             `json:"skipped_water_regions"`
	Smoothed     int             `json:"smoothed"`
	Bridged      int             `json:"bridged"`
	Flooded      int             `json:"flooded"`
	Cleared      int             `json:"cleared"`
	Vegetation   int             `json:"vegetation"`
	Ticks        int             `json:"ticks"`
	StartedAt    time.Time       `json:"started_at"`
	Duration     time.Duration   `json:"duration"`
}

//go:generate go tool mockgen -source=types.go -destination=../mocks/mock_commit_listener.go -package=mocks

// CommitListener is notified after every committed expansion.
type CommitListener interface {
	OnCommit(exp Expansion)
}

// CommitListenerFunc adapts a function to CommitListener.
type CommitListenerFunc func(exp Expansion)

func (f CommitListenerFunc) OnCommit(exp Expansion) {
	f(exp)
}
