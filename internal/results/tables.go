package results

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sokolhessnerlab/csn/internal/drift"
	"github.com/sokolhessnerlab/csn/internal/exclusion"
)

// SaveDriftReport persists one participant's drift report under a run.
func (s *Store) SaveDriftReport(ctx context.Context, runID string, report drift.Report) error {
	return s.execWithRetry(ctx,
		`INSERT INTO drift_reports (
            run_id, participant_id,
            avg_error_change, max_error_change,
            pix_x_offset_change, pix_y_offset_change,
            pre_avg_error, post_avg_error,
            pre_offset_distance, post_offset_distance, offset_distance_change
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		report.ParticipantID,
		nullableFloat(report.AvgErrorChange),
		nullableFloat(report.MaxErrorChange),
		nullableFloat(report.PixXOffsetChange),
		nullableFloat(report.PixYOffsetChange),
		nullableFloat(report.PreAvgError),
		nullableFloat(report.PostAvgError),
		nullableFloat(report.PreOffsetDistance),
		nullableFloat(report.PostOffsetDistance),
		nullableFloat(report.OffsetDistanceChange),
	)
}

// SaveDecision persists one participant's exclusion decision under a run.
func (s *Store) SaveDecision(ctx context.Context, runID string, decision exclusion.Decision) error {
	included := 0
	if decision.Included {
		included = 1
	}
	return s.execWithRetry(ctx,
		`INSERT INTO exclusion_decisions (run_id, participant_id, included, reason)
         VALUES (?, ?, ?, ?)`,
		runID,
		decision.ParticipantID,
		included,
		string(decision.Reason),
	)
}

// ListDriftReports returns a run's drift reports ordered by participant.
func (s *Store) ListDriftReports(ctx context.Context, runID string) ([]drift.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id,
                avg_error_change, max_error_change,
                pix_x_offset_change, pix_y_offset_change,
                pre_avg_error, post_avg_error,
                pre_offset_distance, post_offset_distance, offset_distance_change
         FROM drift_reports WHERE run_id = ? ORDER BY participant_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query drift reports: %w", err)
	}
	defer rows.Close()

	var reports []drift.Report
	for rows.Next() {
		var (
			report drift.Report
			values [9]sql.NullFloat64
		)
		if err := rows.Scan(&report.ParticipantID,
			&values[0], &values[1], &values[2], &values[3], &values[4],
			&values[5], &values[6], &values[7], &values[8]); err != nil {
			return nil, fmt.Errorf("scan drift report: %w", err)
		}
		report.AvgErrorChange = floatOrNaN(values[0])
		report.MaxErrorChange = floatOrNaN(values[1])
		report.PixXOffsetChange = floatOrNaN(values[2])
		report.PixYOffsetChange = floatOrNaN(values[3])
		report.PreAvgError = floatOrNaN(values[4])
		report.PostAvgError = floatOrNaN(values[5])
		report.PreOffsetDistance = floatOrNaN(values[6])
		report.PostOffsetDistance = floatOrNaN(values[7])
		report.OffsetDistanceChange = floatOrNaN(values[8])
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// ListDecisions returns a run's exclusion decisions ordered by participant.
func (s *Store) ListDecisions(ctx context.Context, runID string) ([]exclusion.Decision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id, included, reason
         FROM exclusion_decisions WHERE run_id = ? ORDER BY participant_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query exclusion decisions: %w", err)
	}
	defer rows.Close()

	var decisions []exclusion.Decision
	for rows.Next() {
		var (
			decision exclusion.Decision
			included int
			reason   string
		)
		if err := rows.Scan(&decision.ParticipantID, &included, &reason); err != nil {
			return nil, fmt.Errorf("scan exclusion decision: %w", err)
		}
		decision.Included = included != 0
		decision.Reason = exclusion.Reason(reason)
		decisions = append(decisions, decision)
	}
	return decisions, rows.Err()
}
