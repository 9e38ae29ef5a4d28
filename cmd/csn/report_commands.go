package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sokolhessnerlab/csn/internal/results"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var runFlag string

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render stored results tables",
	}
	reportCmd.PersistentFlags().StringVar(&runFlag, "run", "", "Batch run id (defaults to the latest run)")

	reportCmd.AddCommand(newReportExclusionsCommand(ctx, &runFlag))
	reportCmd.AddCommand(newReportDriftCommand(ctx, &runFlag))

	return reportCmd
}

func newReportExclusionsCommand(ctx *commandContext, runFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "exclusions",
		Short: "Show per-participant exclusion decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd.Context(), ctx, *runFlag, func(store *results.Store, run results.BatchRun) error {
				decisions, err := store.ListDecisions(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(decisions))
				included := 0
				for _, decision := range decisions {
					if decision.Included {
						included++
					}
					rows = append(rows, []string{
						decision.ParticipantID,
						decisionGlyph(decision.Included),
						reasonLabel(decision.Reason),
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]column{
					{name: "Participant"},
					{name: "Included"},
					{name: "Reason"},
				}, rows))
				fmt.Fprintf(out, "Run %s (%s): %d included / %d total\n",
					run.ID, run.StartedAt.Format("2006-01-02 15:04"), included, len(decisions))
				return nil
			})
		},
	}
}

func newReportDriftCommand(ctx *commandContext, runFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "drift",
		Short: "Show per-participant drift metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd.Context(), ctx, *runFlag, func(store *results.Store, run results.BatchRun) error {
				reports, err := store.ListDriftReports(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(reports))
				for _, report := range reports {
					rows = append(rows, []string{
						report.ParticipantID,
						formatMetric(report.PreAvgError),
						formatMetric(report.PostAvgError),
						formatMetric(report.AvgErrorChange),
						formatMetric(report.MaxErrorChange),
						formatMetric(report.PixXOffsetChange),
						formatMetric(report.PixYOffsetChange),
						formatMetric(report.OffsetDistanceChange),
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]column{
					{name: "Participant"},
					{name: "Pre Err (deg)", numeric: true},
					{name: "Post Err (deg)", numeric: true},
					{name: "Avg Δ (deg)", numeric: true},
					{name: "Max Δ (deg)", numeric: true},
					{name: "X Δ (px)", numeric: true},
					{name: "Y Δ (px)", numeric: true},
					{name: "Dist Δ (px)", numeric: true},
				}, rows))
				fmt.Fprintf(out, "Run %s: %d participants with complete validation pairs\n", run.ID, len(reports))
				return nil
			})
		},
	}
}

// withRun opens the results store and resolves the requested (or latest) run.
func withRun(cmdCtx context.Context, ctx *commandContext, runID string, fn func(*results.Store, results.BatchRun) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := results.Open(cfg.Paths.ResultsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	var run results.BatchRun
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		run, err = store.GetRun(cmdCtx, trimmed)
	} else {
		run, err = store.LatestRun(cmdCtx)
	}
	if err != nil {
		return err
	}
	return fn(store, run)
}
