package db

import (
	"time"
)

type Session struct {
	ID         string    `json:"id"`
	Seed       int64     `json:"seed"`
	TileSize   float64   `json:"tile_size"`
	MinX       int64     `json:"min_x"`
	MinY       int64     `json:"min_y"`
	MaxX       int64     `json:"max_x"`
	MaxY       int64     `json:"max_y"`
	Clusters   int64     `json:"clusters"`
	WaterCells int64     `json:"water_cells"`
	Vegetation int64     `json:"vegetation"`
	StartedAt  time.Time `json:"started_at"`
}

type Expansion struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Directions  string    `json:"directions"`
	MinX        int64     `json:"min_x"`
	MinY        int64     `json:"min_y"`
	MaxX        int64     `json:"max_x"`
	MaxY        int64     `json:"max_y"`
	NewCells    int64     `json:"new_cells"`
	Clusters    int64     `json:"clusters"`
	WaterCells  int64     `json:"water_cells"`
	Vegetation  int64     `json:"vegetation"`
	Ticks       int64     `json:"ticks"`
	DurationMs  int64     `json:"duration_ms"`
	CommittedAt time.Time `json:"committed_at"`
}
