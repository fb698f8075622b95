package player

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
)

// Terrain is the part of the terrain service the player endpoints read.
type Terrain interface {
	IsWalkable(p grid.Vec2) bool
	WorldToGrid(p grid.Vec2) grid.Cell
}

// PlayerHandlers contains all HTTP handlers for player operations
type PlayerHandlers struct {
	tracker *Tracker
	terrain Terrain
	logger  logging.LoggerInterface
}

// NewPlayerHandlers creates a new player handlers instance
func NewPlayerHandlers(tracker *Tracker, terrain Terrain, logger logging.LoggerInterface) *PlayerHandlers {
	return &PlayerHandlers{
		tracker: tracker,
		terrain: terrain,
		logger:  logging.OrNop(logger).With("component", "player-handlers"),
	}
}

// RegisterRoutes registers all player-related routes
func (h *PlayerHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/player", func(r chi.Router) {
		r.Get("/position", h.GetPosition)
		r.Put("/position", h.UpdatePosition)
	})
}

// GetPosition returns the player's position and whether it stands on walkable terrain
func (h *PlayerHandlers) GetPosition(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.response())
}

// UpdatePosition updates the player's position
func (h *PlayerHandlers) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode position update request", "error", err)
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.X == nil || req.Y == nil {
		writeErrorResponse(w, "x and y are required", http.StatusBadRequest)
		return
	}

	if err := h.tracker.SetPosition(grid.Vec2{X: *req.X, Y: *req.Y}); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidPosition) {
			status = http.StatusBadRequest
		}
		writeErrorResponse(w, err.Error(), status)
		return
	}

	render.JSON(w, r, h.response())
}

func (h *PlayerHandlers) response() PositionResponse {
	pos, moves := h.tracker.Snapshot()
	return PositionResponse{
		Position: pos,
		Cell:     h.terrain.WorldToGrid(pos.Vec2()),
		Walkable: h.terrain.IsWalkable(pos.Vec2()),
		Moves:    moves,
	}
}
