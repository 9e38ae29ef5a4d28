package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sokolhessnerlab/csn/internal/config"
	"github.com/sokolhessnerlab/csn/internal/exclusion"
	"github.com/sokolhessnerlab/csn/internal/ingest"
	"github.com/sokolhessnerlab/csn/internal/logging"
	"github.com/sokolhessnerlab/csn/internal/pipeline"
	"github.com/sokolhessnerlab/csn/internal/results"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dataDirFlag string
	var workersFlag int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process all participant sessions and store the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dataDir := cfg.Paths.DataDir
			if trimmed := strings.TrimSpace(dataDirFlag); trimmed != "" {
				if dataDir, err = ingestDir(trimmed); err != nil {
					return err
				}
			}

			sessions, err := ingest.DiscoverSessions(dataDir)
			if err != nil {
				return err
			}

			inputs := loadInputs(logger, sessions)

			opts := pipeline.Options{
				Workers:         cfg.Pipeline.Workers,
				ErrorThreshold:  cfg.Quality.ErrorThreshold,
				RevalidationGap: cfg.RevalidationGap(),
			}
			if workersFlag > 0 {
				opts.Workers = workersFlag
			}

			lock, err := results.AcquireLock(cfg.Paths.ResultsDir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			store, err := results.Open(cfg.Paths.ResultsDir)
			if err != nil {
				return err
			}
			defer store.Close()

			run := results.BatchRun{
				ID:                uuid.NewString(),
				StartedAt:         time.Now(),
				DataDir:           dataDir,
				ErrorThreshold:    opts.ErrorThreshold,
				RevalidationGapMS: opts.RevalidationGap.Milliseconds(),
			}
			if err := store.BeginRun(cmd.Context(), run); err != nil {
				return err
			}

			logger.Info("batch started",
				logging.String("run_id", run.ID),
				logging.Int("participants", len(inputs)),
				logging.Int("workers", opts.Workers),
				logging.Float64("error_threshold", opts.ErrorThreshold),
				logging.Duration("revalidation_gap", opts.RevalidationGap),
			)

			outcomes := pipeline.RunBatch(cmd.Context(), logger, inputs, opts)

			included := 0
			for _, outcome := range outcomes {
				if err := store.SaveDecision(cmd.Context(), run.ID, outcome.Decision); err != nil {
					return err
				}
				if outcome.Drift != nil {
					if err := store.SaveDriftReport(cmd.Context(), run.ID, *outcome.Drift); err != nil {
						return err
					}
				}
				if outcome.Decision.Included {
					included++
				}
			}
			if err := store.CompleteRun(cmd.Context(), run.ID, len(outcomes)); err != nil {
				return err
			}

			logger.Info("batch complete",
				logging.String("run_id", run.ID),
				logging.Int("included", included),
				logging.Int("excluded", len(outcomes)-included),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderOutcomeSummary(outcomes))
			fmt.Fprintf(out, "Run %s: %d participants, %d included, %d excluded\n",
				run.ID, len(outcomes), included, len(outcomes)-included)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "Session data directory (overrides paths.data_dir)")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent participants (overrides pipeline.workers)")
	return cmd
}

// loadInputs reads each session's files. Load failures degrade that one
// participant to an empty input so the pipeline records an exclusion instead
// of the batch aborting.
func loadInputs(logger *slog.Logger, sessions []ingest.Session) []pipeline.Input {
	inputs := make([]pipeline.Input, 0, len(sessions))
	for _, session := range sessions {
		input := pipeline.Input{ParticipantID: session.ParticipantID}

		events, err := ingest.LoadEvents(session.EventsPath)
		if err != nil {
			logger.Warn("events unreadable, participant will be excluded",
				logging.String(logging.FieldParticipant, session.ParticipantID),
				logging.Error(err),
			)
		} else {
			input.Events = events
		}

		times, err := ingest.LoadRecordingTimes(session.RecordingsPath)
		if err != nil {
			logger.Warn("recordings unreadable, participant will be excluded",
				logging.String(logging.FieldParticipant, session.ParticipantID),
				logging.Error(err),
			)
		} else {
			input.RecordingTimes = times
		}

		inputs = append(inputs, input)
	}
	return inputs
}

func renderOutcomeSummary(outcomes []pipeline.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		preError, postError, driftValue := "-", "-", "-"
		if outcome.Pair.Pre != nil {
			preError = formatMetric(outcome.Pair.Pre.AvgError)
		}
		if outcome.Pair.Post != nil {
			postError = formatMetric(outcome.Pair.Post.AvgError)
		}
		if outcome.Drift != nil {
			driftValue = formatMetric(outcome.Drift.AvgErrorChange)
		}
		rows = append(rows, []string{
			outcome.ParticipantID,
			decisionGlyph(outcome.Decision.Included),
			reasonLabel(outcome.Decision.Reason),
			preError,
			postError,
			driftValue,
		})
	}
	return renderTable([]column{
		{name: "Participant"},
		{name: "Included"},
		{name: "Reason"},
		{name: "Pre Err (deg)", numeric: true},
		{name: "Post Err (deg)", numeric: true},
		{name: "Drift (deg)", numeric: true},
	}, rows)
}

func reasonLabel(reason exclusion.Reason) string {
	switch reason {
	case exclusion.ReasonOK:
		return "ok"
	case exclusion.ReasonMissingValidation:
		return "missing validation"
	case exclusion.ReasonQualityBelowThreshold:
		return "quality below threshold"
	default:
		return string(reason)
	}
}

func ingestDir(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}
	return expanded, nil
}
