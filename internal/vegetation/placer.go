package vegetation

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/random"
	"github.com/VoidMesh/terrain/internal/spatial"
)

// instanceNamespace scopes the name-based instance IDs.
var instanceNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("voidmesh.terrain.vegetation"))

// Params configures placement density and spacing.
type Params struct {
	Density   float64
	Spacing   float64
	Exclusion int
	Variants  int
	Seed      int64
}

// ParamsFromConfig extracts the vegetation parameters from a normalized terrain config.
func ParamsFromConfig(cfg config.TerrainConfig, seed int64) Params {
	return Params{
		Density:   cfg.VegetationDensity,
		Spacing:   cfg.VegetationSpacing,
		Exclusion: cfg.VegetationExclusion,
		Variants:  cfg.VegetationVariants,
		Seed:      seed,
	}
}

// Instance is one placed decoration.
type Instance struct {
	ID       uuid.UUID `json:"id"`
	Cell     grid.Cell `json:"cell"`
	Position grid.Vec2 `json:"position"`
	Variant  int       `json:"variant"`
}

// Placer scatters spaced-out decorations over Grass. Its spatial index spans the whole
// session so spacing also holds across regions.
type Placer struct {
	params    Params
	rnd       random.GeneratorInterface
	logger    logging.LoggerInterface
	index     *spatial.Hash[int]
	instances []Instance
}

func NewPlacer(params Params, rnd random.GeneratorInterface, logger logging.LoggerInterface) *Placer {
	if params.Variants < 1 {
		params.Variants = 1
	}
	return &Placer{
		params: params,
		rnd:    rnd,
		logger: logging.OrNop(logger).With("component", "vegetation-placer"),
		index:  spatial.New[int](int(math.Ceil(params.Spacing))),
	}
}

// Instances returns every instance placed this session.
func (p *Placer) Instances() []Instance {
	out := make([]Instance, len(p.instances))
	copy(out, p.instances)
	return out
}

func (p *Placer) Len() int {
	return len(p.instances)
}

// Place shuffles candidates and accepts them in order until the density target is met or
// the candidates run out. It returns only the instances placed by this call.
func (p *Placer) Place(g *grid.Grid, candidates []grid.Cell, player grid.Cell) []Instance {
	if len(candidates) == 0 {
		p.logger.Debug("No vegetation candidates")
		return nil
	}

	grassCount := 0
	for _, c := range candidates {
		if g.Get(c) == grid.Grass {
			grassCount++
		}
	}
	target := int(math.Round(p.params.Density * float64(grassCount)))
	if target == 0 {
		p.logger.Debug("Vegetation target is zero", "candidates", len(candidates), "grass", grassCount)
		return nil
	}

	order := make([]grid.Cell, len(candidates))
	copy(order, candidates)
	p.rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	var placed []Instance
	rejected := 0
	for _, c := range order {
		if len(placed) >= target {
			break
		}
		if !p.accepts(g, c, player) {
			rejected++
			continue
		}
		inst := Instance{
			ID:       p.instanceID(c),
			Cell:     c,
			Position: g.GridToWorld(c),
			Variant:  p.rnd.Intn(p.params.Variants),
		}
		p.index.Insert(c, len(p.instances))
		p.instances = append(p.instances, inst)
		placed = append(placed, inst)
	}

	p.logger.Debug("Vegetation placed",
		"candidates", len(candidates), "grass", grassCount, "target", target,
		"placed", len(placed), "rejected", rejected, "total", len(p.instances))
	return placed
}

func (p *Placer) accepts(g *grid.Grid, c grid.Cell, player grid.Cell) bool {
	if grid.Chebyshev(c, player) < p.params.Exclusion {
		return false
	}
	if g.Get(c) != grid.Grass {
		return false
	}
	return !p.tooClose(c)
}

func (p *Placer) tooClose(c grid.Cell) bool {
	spacingSq := p.params.Spacing * p.params.Spacing
	return p.index.Any(c, p.index.BucketSize(), func(e spatial.Entry[int]) bool {
		return float64(grid.DistSq(e.Cell, c)) < spacingSq
	})
}

// instanceID is stable for a given seed and cell.
func (p *Placer) instanceID(c grid.Cell) uuid.UUID {
	return uuid.NewSHA1(instanceNamespace, []byte(fmt.Sprintf("%d:%d:%d", p.params.Seed, c.X, c.Y)))
}
