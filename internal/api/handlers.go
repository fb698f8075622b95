package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/terrain"
	"github.com/VoidMesh/terrain/internal/vegetation"
)

// MaxCellsPerRequest caps the area of a single cells query.
const MaxCellsPerRequest = 128 * 128

var (
	errMissingParam = errors.New("missing query parameter")
	errAreaTooLarge = errors.New("requested area too large")
)

// TerrainService is the read surface of the terrain session served over HTTP.
type TerrainService interface {
	terrain.WalkabilityQuery
	Generated() bool
	Bounds() grid.Bounds
	Cell(c grid.Cell) grid.TerrainType
	Snapshot(b grid.Bounds) []grid.Tile
	Vegetation() []vegetation.Instance
	Frame() grid.Frame
	Stats() terrain.Stats
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type Handler struct {
	terrain TerrainService
	logger  logging.LoggerInterface
}

func NewHandler(terrain TerrainService, logger logging.LoggerInterface) *Handler {
	return &Handler{
		terrain: terrain,
		logger:  logging.OrNop(logger).With("component", "api"),
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "voidmesh-terrain",
		"version":   "1.0.0",
		"generated": h.terrain.Generated(),
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetBounds(w http.ResponseWriter, r *http.Request) {
	stats := h.terrain.Stats()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"bounds":    stats.Bounds,
		"pending":   stats.Pending,
		"expanding": stats.Expanding,
		"frame":     h.terrain.Frame(),
	})
}

func (h *Handler) GetWalkable(w http.ResponseWriter, r *http.Request) {
	pos, err := worldParams(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world position", err)
		return
	}

	cell := h.terrain.WorldToGrid(pos)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"x":        pos.X,
		"y":        pos.Y,
		"cell":     cell,
		"terrain":  h.terrain.Cell(cell),
		"walkable": h.terrain.IsWalkable(pos),
	})
}

func (h *Handler) GetCells(w http.ResponseWriter, r *http.Request) {
	var corners [4]int
	for i, name := range []string{"min_x", "min_y", "max_x", "max_y"} {
		v, err := intParam(r, name)
		if err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid "+name, err)
			return
		}
		corners[i] = v
	}

	requested := grid.NewBounds(grid.Cell{X: corners[0], Y: corners[1]}, grid.Cell{X: corners[2], Y: corners[3]})
	clipped := requested.Intersect(h.terrain.Bounds())
	if !clipped.Empty() && clipped.Area() > MaxCellsPerRequest {
		h.renderError(w, r, http.StatusBadRequest,
			fmt.Sprintf("area of %d cells exceeds limit of %d", clipped.Area(), MaxCellsPerRequest), errAreaTooLarge)
		return
	}

	tiles := h.terrain.Snapshot(clipped)
	if tiles == nil {
		tiles = []grid.Tile{}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"requested": requested,
		"bounds":    clipped,
		"count":     len(tiles),
		"tiles":     tiles,
	})
}

func (h *Handler) GetVegetation(w http.ResponseWriter, r *http.Request) {
	instances := h.terrain.Vegetation()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"count":     len(instances),
		"instances": instances,
	})
}

// ConvertWorld maps a world position to its cell.
func (h *Handler) ConvertWorld(w http.ResponseWriter, r *http.Request) {
	pos, err := worldParams(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world position", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"world": pos,
		"cell":  h.terrain.WorldToGrid(pos),
	})
}

// ConvertGrid maps a cell to the world position of its centre.
func (h *Handler) ConvertGrid(w http.ResponseWriter, r *http.Request) {
	x, err := intParam(r, "x")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid cell x coordinate", err)
		return
	}
	y, err := intParam(r, "y")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid cell y coordinate", err)
		return
	}

	cell := grid.Cell{X: x, Y: y}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"cell":  cell,
		"world": h.terrain.GridToWorld(cell),
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.terrain.Stats())
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		h.logger.Warn("API error", "error", err, "message", message, "status", status, "path", r.URL.Path)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}

func worldParams(r *http.Request) (grid.Vec2, error) {
	x, err := floatParam(r, "x")
	if err != nil {
		return grid.Vec2{}, err
	}
	y, err := floatParam(r, "y")
	if err != nil {
		return grid.Vec2{}, err
	}
	return grid.Vec2{X: x, Y: y}, nil
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %s: not a finite number", name)
	}
	return v, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return v, nil
}
