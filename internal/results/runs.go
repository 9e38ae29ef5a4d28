package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BatchRun records the parameters and bookkeeping of one batch invocation.
type BatchRun struct {
	ID                string
	StartedAt         time.Time
	CompletedAt       time.Time // zero until CompleteRun
	DataDir           string
	ErrorThreshold    float64
	RevalidationGapMS int64
	Participants      int
}

// BeginRun records the start of a batch run.
func (s *Store) BeginRun(ctx context.Context, run BatchRun) error {
	return s.execWithRetry(ctx,
		`INSERT INTO batch_runs (id, started_at, data_dir, error_threshold, revalidation_gap_ms, participants)
         VALUES (?, ?, ?, ?, ?, 0)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.DataDir,
		run.ErrorThreshold,
		run.RevalidationGapMS,
	)
}

// CompleteRun marks a run finished and records how many participants it covered.
func (s *Store) CompleteRun(ctx context.Context, runID string, participants int) error {
	return s.execWithRetry(ctx,
		`UPDATE batch_runs SET completed_at = ?, participants = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		participants,
		runID,
	)
}

// LatestRun returns the most recently started batch run.
func (s *Store) LatestRun(ctx context.Context) (BatchRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at, data_dir, error_threshold, revalidation_gap_ms, participants
         FROM batch_runs ORDER BY started_at DESC LIMIT 1`)
	return scanRun(row)
}

// GetRun returns one batch run by id.
func (s *Store) GetRun(ctx context.Context, runID string) (BatchRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at, data_dir, error_threshold, revalidation_gap_ms, participants
         FROM batch_runs WHERE id = ?`, runID)
	return scanRun(row)
}

func scanRun(row *sql.Row) (BatchRun, error) {
	var (
		run         BatchRun
		startedAt   string
		completedAt sql.NullString
	)
	err := row.Scan(&run.ID, &startedAt, &completedAt, &run.DataDir,
		&run.ErrorThreshold, &run.RevalidationGapMS, &run.Participants)
	if errors.Is(err, sql.ErrNoRows) {
		return BatchRun{}, ErrNoRuns
	}
	if err != nil {
		return BatchRun{}, fmt.Errorf("scan batch run: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return BatchRun{}, fmt.Errorf("parse started_at: %w", err)
	}
	if completedAt.Valid {
		if run.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt.String); err != nil {
			return BatchRun{}, fmt.Errorf("parse completed_at: %w", err)
		}
	}
	return run, nil
}
