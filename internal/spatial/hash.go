// Package spatial provides a uniform bucket index over grid cells for proximity queries.
package spatial

import (
	"github.com/VoidMesh/terrain/internal/grid"
)

type bucketKey struct {
	bx, by int
}

// Entry is one indexed item.
type Entry[T any] struct {
	Cell  grid.Cell
	Value T
}

// Hash buckets entries into square cells of BucketSize. Any entry within BucketSize of a
// query point lives in the 3x3 block of buckets around it.
type Hash[T any] struct {
	bucketSize int
	buckets    map[bucketKey][]Entry[T]
	count      int
}

// New creates a hash with the given bucket edge length (clamped to at least 1).
func New[T any](bucketSize int) *Hash[T] {
	if bucketSize < 1 {
		bucketSize = 1
	}
	return &Hash[T]{
		bucketSize: bucketSize,
		buckets:    make(map[bucketKey][]Entry[T]),
	}
}

func (h *Hash[T]) BucketSize() int {
	return h.bucketSize
}

func (h *Hash[T]) Len() int {
	return h.count
}

// Insert adds v at c.
func (h *Hash[T]) Insert(c grid.Cell, v T) {
	k := h.keyOf(c)
	h.buckets[k] = append(h.buckets[k], Entry[T]{Cell: c, Value: v})
	h.count++
}

// Nearby calls fn for every entry in the buckets overlapping the square of the given
// radius around c, until fn returns false. Callers still apply their exact distance test.
func (h *Hash[T]) Nearby(c grid.Cell, radius int, fn func(e Entry[T]) bool) {
	lo := h.keyOf(grid.Cell{X: c.X - radius, Y: c.Y - radius})
	hi := h.keyOf(grid.Cell{X: c.X + radius, Y: c.Y + radius})
	for by := lo.by; by <= hi.by; by++ {
		for bx := lo.bx; bx <= hi.bx; bx++ {
			for _, e := range h.buckets[bucketKey{bx: bx, by: by}] {
				if !fn(e) {
					return
				}
			}
		}
	}
}

// Any reports whether some entry near c satisfies pred.
func (h *Hash[T]) Any(c grid.Cell, radius int, pred func(e Entry[T]) bool) bool {
	found := false
	h.Nearby(c, radius, func(e Entry[T]) bool {
		if pred(e) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (h *Hash[T]) keyOf(c grid.Cell) bucketKey {
	return bucketKey{bx: floorDiv(c.X, h.bucketSize), by: floorDiv(c.Y, h.bucketSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
