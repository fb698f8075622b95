package random

import (
	"math/rand"
)

// GeneratorInterface defines the interface for random number generation.
type GeneratorInterface interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Generator implements GeneratorInterface using math/rand.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a new random generator with the given seed.
func NewGenerator(seed int64) *Generator {
	source := rand.NewSource(seed)
	return &Generator{
		rand: rand.New(source),
	}
}

// Derive returns an independent stream for one component so that adding draws in one
// component does not shift another's sequence.
func Derive(seed int64, salt int64) *Generator {
	return NewGenerator(seed ^ (salt * 0x5DEECE66D))
}

func (r *Generator) Intn(n int) int {
	return r.rand.Intn(n)
}

func (r *Generator) Float64() float64 {
	return r.rand.Float64()
}

func (r *Generator) Shuffle(n int, swap func(i, j int)) {
	r.rand.Shuffle(n, swap)
}

// Range returns an int in [lo, hi].
func Range(r GeneratorInterface, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}
