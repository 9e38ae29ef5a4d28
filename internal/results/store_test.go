package results

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sokolhessnerlab/csn/internal/drift"
	"github.com/sokolhessnerlab/csn/internal/exclusion"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func beginTestRun(t *testing.T, store *Store) string {
	t.Helper()
	runID := uuid.NewString()
	err := store.BeginRun(context.Background(), BatchRun{
		ID:                runID,
		StartedAt:         time.Now(),
		DataDir:           "/data/sessions",
		ErrorThreshold:    2.5,
		RevalidationGapMS: 3600000,
	})
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	return runID
}

func TestRunLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	runID := beginTestRun(t, store)

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !run.CompletedAt.IsZero() {
		t.Fatalf("expected incomplete run, got %+v", run)
	}
	if run.ErrorThreshold != 2.5 || run.RevalidationGapMS != 3600000 {
		t.Fatalf("unexpected run parameters %+v", run)
	}

	if err := store.CompleteRun(ctx, runID, 7); err != nil {
		t.Fatalf("complete run: %v", err)
	}
	run, err = store.LatestRun(ctx)
	if err != nil {
		t.Fatalf("latest run: %v", err)
	}
	if run.ID != runID || run.Participants != 7 || run.CompletedAt.IsZero() {
		t.Fatalf("unexpected completed run %+v", run)
	}
}

func TestLatestRunEmptyStore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.LatestRun(context.Background()); err != ErrNoRuns {
		t.Fatalf("expected ErrNoRuns, got %v", err)
	}
}

func TestSaveAndListDecisions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	runID := beginTestRun(t, store)

	decisions := []exclusion.Decision{
		{ParticipantID: "002", Included: false, Reason: exclusion.ReasonMissingValidation},
		{ParticipantID: "001", Included: true, Reason: exclusion.ReasonOK},
	}
	for _, decision := range decisions {
		if err := store.SaveDecision(ctx, runID, decision); err != nil {
			t.Fatalf("save decision: %v", err)
		}
	}

	listed, err := store.ListDecisions(ctx, runID)
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(listed))
	}
	if listed[0].ParticipantID != "001" || !listed[0].Included {
		t.Fatalf("expected participant order, got %+v", listed)
	}
	if listed[1].Reason != exclusion.ReasonMissingValidation {
		t.Fatalf("unexpected reason %+v", listed[1])
	}
}

func TestSaveAndListDriftReportsRoundTripsNaN(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	runID := beginTestRun(t, store)

	report := drift.Report{
		ParticipantID:        "014",
		AvgErrorChange:       0.8,
		MaxErrorChange:       math.NaN(),
		PixXOffsetChange:     3,
		PixYOffsetChange:     4,
		PreAvgError:          0.5,
		PostAvgError:         1.3,
		PreOffsetDistance:    5,
		PostOffsetDistance:   10,
		OffsetDistanceChange: 5,
	}
	if err := store.SaveDriftReport(ctx, runID, report); err != nil {
		t.Fatalf("save drift report: %v", err)
	}

	listed, err := store.ListDriftReports(ctx, runID)
	if err != nil {
		t.Fatalf("list drift reports: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 report, got %d", len(listed))
	}
	got := listed[0]
	if got.AvgErrorChange != 0.8 || got.PreAvgError != 0.5 || got.PostAvgError != 1.3 {
		t.Fatalf("unexpected report %+v", got)
	}
	if !math.IsNaN(got.MaxErrorChange) {
		t.Fatalf("expected NaN max error change, got %v", got.MaxErrorChange)
	}
	if got.OffsetDistanceChange != 5 {
		t.Fatalf("unexpected distance change %v", got.OffsetDistanceChange)
	}
}

func TestRunsAreIsolated(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	first := beginTestRun(t, store)
	second := beginTestRun(t, store)

	if err := store.SaveDecision(ctx, first, exclusion.Decision{ParticipantID: "001", Included: true, Reason: exclusion.ReasonOK}); err != nil {
		t.Fatalf("save decision: %v", err)
	}
	listed, err := store.ListDecisions(ctx, second)
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no decisions for second run, got %+v", listed)
	}
}

func TestAcquireLockExcludesSecondWriter(t *testing.T) {
	dir := t.TempDir()
	lock, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	if _, err := AcquireLock(dir); err == nil {
		t.Fatal("expected second lock acquisition to fail")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	second, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = second.Close()
}
