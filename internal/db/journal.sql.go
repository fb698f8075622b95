package db

import (
	"context"
	"time"
)

const createSession = `
INSERT INTO sessions (id, seed, tile_size, min_x, min_y, max_x, max_y, clusters, water_cells, vegetation, started_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateSessionParams struct {
	ID         string
	Seed       int64
	TileSize   float64
	MinX       int64
	MinY       int64
	MaxX       int64
	MaxY       int64
	Clusters   int64
	WaterCells int64
	Vegetation int64
	StartedAt  time.Time
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx, createSession,
		arg.ID,
		arg.Seed,
		arg.TileSize,
		arg.MinX,
		arg.MinY,
		arg.MaxX,
		arg.MaxY,
		arg.Clusters,
		arg.WaterCells,
		arg.Vegetation,
		arg.StartedAt,
	)
	return err
}

const getSession = `
SELECT id, seed, tile_size, min_x, min_y, max_x, max_y, clusters, water_cells, vegetation, started_at
FROM sessions
WHERE id = ?
`

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	row := q.db.QueryRowContext(ctx, getSession, id)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.Seed,
		&i.TileSize,
		&i.MinX,
		&i.MinY,
		&i.MaxX,
		&i.MaxY,
		&i.Clusters,
		&i.WaterCells,
		&i.Vegetation,
		&i.StartedAt,
	)
	return i, err
}

const createExpansion = `
INSERT INTO expansions (id, session_id, directions, min_x, min_y, max_x, max_y, new_cells, clusters, water_cells, vegetation, ticks, duration_ms, committed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateExpansionParams struct {
	ID          string
	SessionID   string
	Directions  string
	MinX        int64
	MinY        int64
	MaxX        int64
	MaxY        int64
	NewCells    int64
	Clusters    int64
	WaterCells  int64
	Vegetation  int64
	Ticks       int64
	DurationMs  int64
	CommittedAt time.Time
}

func (q *Queries) CreateExpansion(ctx context.Context, arg CreateExpansionParams) error {
	_, err := q.db.ExecContext(ctx, createExpansion,
		arg.ID,
		arg.SessionID,
		arg.Directions,
		arg.MinX,
		arg.MinY,
		arg.MaxX,
		arg.MaxY,
		arg.NewCells,
		arg.Clusters,
		arg.WaterCells,
		arg.Vegetation,
		arg.Ticks,
		arg.DurationMs,
		arg.CommittedAt,
	)
	return err
}

const listExpansions = `
SELECT id, session_id, directions, min_x, min_y, max_x, max_y, new_cells, clusters, water_cells, vegetation, ticks, duration_ms, committed_at
FROM expansions
WHERE session_id = ?
ORDER BY committed_at, rowid
LIMIT ?
`

type ListExpansionsParams struct {
	SessionID string
	Limit     int64
}

func (q *Queries) ListExpansions(ctx context.Context, arg ListExpansionsParams) ([]Expansion, error) {
	rows, err := q.db.QueryContext(ctx, listExpansions, arg.SessionID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expansion
	for rows.Next() {
		var i Expansion
		if err := rows.Scan(
			&i.ID,
			&i.SessionID,
			&i.Directions,
			&i.MinX,
			&i.MinY,
			&i.MaxX,
			&i.MaxY,
			&i.NewCells,
			&i.Clusters,
			&i.WaterCells,
			&i.Vegetation,
			&i.Ticks,
			&i.DurationMs,
			&i.CommittedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countExpansions = `
SELECT COUNT(*) FROM expansions WHERE session_id = ?
`

func (q *Queries) CountExpansions(ctx context.Context, sessionID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countExpansions, sessionID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
