package player

import (
	"math"
	"sync"
	"time"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
)

// Tracker holds the single player position read by the streaming loop once per check.
type Tracker struct {
	mu       sync.RWMutex
	position Position
	moves    int64
	logger   logging.LoggerInterface
}

func NewTracker(initial grid.Vec2, logger logging.LoggerInterface) *Tracker {
	return &Tracker{
		position: Position{X: initial.X, Y: initial.Y, UpdatedAt: time.Now()},
		logger:   logging.OrNop(logger).With("component", "player-tracker"),
	}
}

// Position returns the current world position.
func (t *Tracker) Position() grid.Vec2 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.position.Vec2()
}

// Snapshot returns the position with its update time and the move count.
func (t *Tracker) Snapshot() (Position, int64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.position, t.moves
}

// SetPosition records a new world position.
func (t *Tracker) SetPosition(p grid.Vec2) error {
	if !finite(p.X) || !finite(p.Y) {
		return ErrInvalidPosition
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.position = Position{X: p.X, Y: p.Y, UpdatedAt: time.Now()}
	t.moves++
	t.logger.Debug("Player position updated", "x", p.X, "y", p.Y, "moves", t.moves)
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
