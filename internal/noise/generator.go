package noise

import (
	"github.com/aquilax/go-perlin"
)

// Generator samples Perlin noise. It satisfies water.NoiseField through Coherence.
type Generator struct {
	noise *perlin.Perlin
	scale float64
}

// NewGenerator creates a new noise generator with the given seed and coherence scale.
// Larger scales give broader water regions.
func NewGenerator(seed int64, scale float64) *Generator {
	if scale <= 0 {
		scale = 1
	}
	// alpha=2, beta=2, n=3 gives smooth terrain-like noise
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		scale: scale,
	}
}

// GetNoise returns a noise value roughly between -1 and 1 for the given coordinates
func (g *Generator) GetNoise(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// Coherence maps world coordinates onto [0,1] using the configured scale. Neighbouring
// positions get similar values, which is what clusters water placements together.
func (g *Generator) Coherence(x, y float64) float64 {
	v := (g.GetNoise(x/g.scale, y/g.scale) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Flat is a constant field, used when clustering should not bias placement.
type Flat float64

func (f Flat) Coherence(x, y float64) float64 {
	return float64(f)
}
