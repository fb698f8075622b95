package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/streamer"
	"github.com/VoidMesh/terrain/internal/terrain"
)

var (
	ErrNoSession     = errors.New("journal: no session started")
	ErrJournalClosed = errors.New("journal: closed")
)

const writeTimeout = 5 * time.Second

// Journal records session and expansion metadata. Terrain itself is never stored; it is
// regenerated from the seed. Commits are queued by OnCommit and written by Run.
type Journal struct {
	queries *LoggingQueries
	logger  logging.LoggerInterface

	mu        sync.Mutex
	sessionID string
	closed    bool
	dropped   int
	records   chan CreateExpansionParams
	done      chan struct{}
}

func NewJournal(database DBTX, bufferSize int, logger logging.LoggerInterface) *Journal {
	return &Journal{
		queries: NewLoggingQueries(database),
		logger:  logging.OrNop(logger).With("component", "journal"),
		records: make(chan CreateExpansionParams, max(bufferSize, 1)),
		done:    make(chan struct{}),
	}
}

// SessionID returns the current session id, empty before StartSession.
func (j *Journal) SessionID() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.sessionID
}

// Dropped returns the number of commits discarded because the queue was full.
func (j *Journal) Dropped() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.dropped
}

// StartSession records the initial build and makes it the target of later commits.
func (j *Journal) StartSession(ctx context.Context, report terrain.Report, tileSize float64) (string, error) {
	id := uuid.New().String()
	err := j.queries.CreateSession(ctx, CreateSessionParams{
		ID:         id,
		Seed:       report.Seed,
		TileSize:   tileSize,
		MinX:       int64(report.Bounds.Min.X),
		MinY:       int64(report.Bounds.Min.Y),
		MaxX:       int64(report.Bounds.Max.X),
		MaxY:       int64(report.Bounds.Max.Y),
		Clusters:   int64(report.Clusters),
		WaterCells: int64(report.WaterCells),
		Vegetation: int64(report.Vegetation),
		StartedAt:  time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	j.mu.Lock()
	j.sessionID = id
	j.mu.Unlock()

	j.logger.Info("Journal session started", "session_id", id, "seed", report.Seed)
	return id, nil
}

// OnCommit queues exp for Run. It never blocks.
func (j *Journal) OnCommit(exp streamer.Expansion) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		j.logger.Debug("Commit ignored", "reason", ErrJournalClosed, "expansion_id", exp.ID.String())
		return
	}
	if j.sessionID == "" {
		j.logger.Debug("Commit ignored", "reason", ErrNoSession, "expansion_id", exp.ID.String())
		return
	}

	select {
	case j.records <- expansionParams(j.sessionID, exp):
	default:
		j.dropped++
		j.logger.Warn("Journal queue full, dropping expansion record", "expansion_id", exp.ID.String(), "dropped", j.dropped)
	}
}

// Record writes exp synchronously.
func (j *Journal) Record(ctx context.Context, exp streamer.Expansion) error {
	sessionID := j.SessionID()
	if sessionID == "" {
		return ErrNoSession
	}
	if err := j.queries.CreateExpansion(ctx, expansionParams(sessionID, exp)); err != nil {
		return fmt.Errorf("failed to record expansion %s: %w", exp.ID, err)
	}
	return nil
}

// Run writes queued records until Close is called or ctx is done.
func (j *Journal) Run(ctx context.Context) {
	defer close(j.done)
	for {
		select {
		case <-ctx.Done():
			j.flush()
			return
		case rec, ok := <-j.records:
			if !ok {
				return
			}
			j.write(rec)
		}
	}
}

// Close stops accepting commits. Run drains what is already queued and returns.
func (j *Journal) Close() {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return
	}
	j.closed = true
	close(j.records)
	j.mu.Unlock()
}

// Wait blocks until Run has returned.
func (j *Journal) Wait() {
	<-j.done
}

// ListExpansions returns up to limit expansions of the current session, oldest first.
func (j *Journal) ListExpansions(ctx context.Context, limit int) ([]Expansion, error) {
	sessionID := j.SessionID()
	if sessionID == "" {
		return nil, ErrNoSession
	}
	expansions, err := j.queries.ListExpansions(ctx, ListExpansionsParams{SessionID: sessionID, Limit: int64(limit)})
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to list expansions: %w", err)
	}
	return expansions, nil
}

func (j *Journal) flush() {
	for {
		select {
		case rec, ok := <-j.records:
			if !ok {
				return
			}
			j.write(rec)
		default:
			return
		}
	}
}

func (j *Journal) write(rec CreateExpansionParams) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := j.queries.CreateExpansion(ctx, rec); err != nil {
		j.logger.Error("Failed to record expansion", "error", err, "expansion_id", rec.ID)
	}
}

func expansionParams(sessionID string, exp streamer.Expansion) CreateExpansionParams {
	return CreateExpansionParams{
		ID:          exp.ID.String(),
		SessionID:   sessionID,
		Directions:  exp.Directions.String(),
		MinX:        int64(exp.Bounds.Min.X),
		MinY:        int64(exp.Bounds.Min.Y),
		MaxX:        int64(exp.Bounds.Max.X),
		MaxY:        int64(exp.Bounds.Max.Y),
		NewCells:    int64(exp.NewCells),
		Clusters:    int64(exp.Clusters),
		WaterCells:  int64(exp.WaterCells),
		Vegetation:  int64(exp.Vegetation),
		Ticks:       int64(exp.Ticks),
		DurationMs:  exp.Duration.Milliseconds(),
		CommittedAt: exp.StartedAt.Add(exp.Duration).UTC(),
	}
}
