package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingQueries wraps the generated Queries struct to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// CreateSession with logging
func (lq *LoggingQueries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	start := time.Now()
	log.Debug("Executing CreateSession", "session_id", arg.ID, "seed", arg.Seed)

	err := lq.Queries.CreateSession(ctx, arg)
	lq.logQuery("CreateSession", start, err, arg.ID)
	return err
}

// GetSession with logging
func (lq *LoggingQueries) GetSession(ctx context.Context, id string) (Session, error) {
	start := time.Now()
	result, err := lq.Queries.GetSession(ctx, id)
	lq.logQuery("GetSession", start, err, id)
	return result, err
}

// CreateExpansion with logging
func (lq *LoggingQueries) CreateExpansion(ctx context.Context, arg CreateExpansionParams) error {
	start := time.Now()
	log.Debug("Executing CreateExpansion",
		"expansion_id", arg.ID,
		"session_id", arg.SessionID,
		"directions", arg.Directions,
	)

	err := lq.Queries.CreateExpansion(ctx, arg)
	lq.logQuery("CreateExpansion", start, err, arg.ID)
	return err
}

// ListExpansions with logging
func (lq *LoggingQueries) ListExpansions(ctx context.Context, arg ListExpansionsParams) ([]Expansion, error) {
	start := time.Now()
	result, err := lq.Queries.ListExpansions(ctx, arg)
	lq.logQuery("ListExpansions", start, err, arg)

	if err == nil {
		log.Debug("ListExpansions result", "count", len(result), "session_id", arg.SessionID)
	}
	return result, err
}

// CountExpansions with logging
func (lq *LoggingQueries) CountExpansions(ctx context.Context, sessionID string) (int64, error) {
	start := time.Now()
	result, err := lq.Queries.CountExpansions(ctx, sessionID)
	lq.logQuery("CountExpansions", start, err, sessionID)
	return result, err
}
