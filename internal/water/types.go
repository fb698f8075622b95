package water

import (
	"errors"

	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/grid"
)

const (
	// StrictCircularity and above produce exact discs.
	StrictCircularity = 0.98
	// JitterCircularity and above produce discs with a jittered radius.
	JitterCircularity = 0.9
	// CoreFraction of the radius is always filled for irregular clusters.
	CoreFraction = 0.6
	// ControlPoints is the number of angular samples shaping an irregular cluster.
	ControlPoints = 8
)

var (
	ErrTooClose                = errors.New("water: center too close to an existing cluster")
	ErrForbidden               = errors.New("water: center inside a forbidden zone")
	ErrClipsBoundary           = errors.New("water: cluster would cross the region boundary")
	ErrConstraintUnsatisfiable = errors.New("water: region too small for the requested cluster shape")
	ErrEmptyCluster            = errors.New("water: cluster has no member cells")
)

// Params configures cluster sampling and shape.
type Params struct {
	WaterFraction float64
	MinRadius     int
	MaxRadius     int
	Circularity   float64
	MinSpacing    int
	BorderBuffer  int
	MaxAttempts   int
	NoiseFloor    float64
}

// ParamsFromConfig extracts the water parameters from a normalized terrain config.
func ParamsFromConfig(cfg config.TerrainConfig) Params {
	return Params{
		WaterFraction: cfg.WaterFraction,
		MinRadius:     cfg.MinWaterRadius,
		MaxRadius:     cfg.MaxWaterRadius,
		Circularity:   cfg.Circularity,
		MinSpacing:    cfg.MinWaterDistance,
		BorderBuffer:  cfg.BorderBuffer,
		MaxAttempts:   cfg.MaxPlacementAttempts,
		NoiseFloor:    cfg.NoiseFloor,
	}
}

// MinRegionSpan is the smallest width or height a region needs before any cluster can be
// placed in it.
func (p Params) MinRegionSpan() int {
	return max(2*p.MaxRadius+1, p.MaxRadius+p.MinSpacing)
}

//go:generate go tool mockgen -source=types.go -destination=../mocks/mock_noise_field.go -package=mocks -exclude_interfaces=Zone

// NoiseField supplies the coherence value used to bias where clusters are accepted.
type NoiseField interface {
	Coherence(x, y float64) float64
}

// Zone is an area where cluster centers may not be placed.
type Zone interface {
	Contains(c grid.Cell) bool
}

// CircleZone covers cells within Radius (Euclidean) of Center.
type CircleZone struct {
	Center grid.Cell
	Radius int
}

func (z CircleZone) Contains(c grid.Cell) bool {
	return grid.DistSq(z.Center, c) <= z.Radius*z.Radius
}

// RectZone covers a rectangle.
type RectZone struct {
	Bounds grid.Bounds
}

func (z RectZone) Contains(c grid.Cell) bool {
	return z.Bounds.Contains(c)
}

// Cluster is one accepted water blob.
type Cluster struct {
	ID          int         `json:"id"`
	Center      grid.Cell   `json:"center"`
	Radius      float64     `json:"radius"`
	Circularity float64     `json:"circularity"`
	Cells       []grid.Cell `json:"-"`
}

// Result summarizes one Generate call.
type Result struct {
	Region     grid.Bounds
	Clusters   []Cluster
	WaterCells int
	Target     int
	Attempts   int
	Skipped    bool
}
