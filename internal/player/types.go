package player

import (
	"errors"
	"time"

	"github.com/VoidMesh/terrain/internal/grid"
)

var ErrInvalidPosition = errors.New("player: position must be finite")

// Position is the last reported world position of the player.
type Position struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vec2 returns the position as a world vector.
func (p Position) Vec2() grid.Vec2 {
	return grid.Vec2{X: p.X, Y: p.Y}
}

// UpdatePositionRequest represents the request to update player position
type UpdatePositionRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// PositionResponse is the player's position with its terrain context.
type PositionResponse struct {
	Position Position  `json:"position"`
	Cell     grid.Cell `json:"cell"`
	Walkable bool      `json:"walkable"`
	Moves    int64     `json:"moves"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
