package validation

import (
	"testing"
	"time"

	"github.com/sokolhessnerlab/csn/internal/eyelog"
	"github.com/sokolhessnerlab/csn/internal/phases"
)

func record(start int64, avgError float64) eyelog.QualityRecord {
	return eyelog.QualityRecord{
		ParticipantID: "001",
		StartTime:     start,
		Category:      eyelog.CategoryValidation,
		Quality:       eyelog.QualityGood,
		AvgError:      avgError,
	}
}

var bounds = phases.Boundaries{
	ParticipantID: "001",
	Calibration:   1000,
	Validation:    5000,
	TaskStart:     10000,
	TaskEnd:       3610000,
}

func TestMatchPicksLastBeforeAndLastAfter(t *testing.T) {
	records := []eyelog.QualityRecord{
		record(4000, 1.2),
		record(9500, 1.8),
		record(7300000, 1.9),
		record(7400000, 3.0),
	}
	pair := Match(records, bounds, DefaultRevalidationGap)
	if pair.Pre == nil || pair.Pre.StartTime != 9500 {
		t.Fatalf("expected pre at 9500, got %+v", pair.Pre)
	}
	if pair.Post == nil || pair.Post.StartTime != 7400000 {
		t.Fatalf("expected post at 7400000, got %+v", pair.Post)
	}
	if !pair.Complete() {
		t.Fatal("expected complete pair")
	}
}

// Regression for the post-cutoff arithmetic: task_end+gap is 7210000 here,
// so a validation at 3620000 must not qualify as the post-task check.
func TestMatchPostCutoffIsTaskEndPlusGap(t *testing.T) {
	records := []eyelog.QualityRecord{
		record(4000, 1.2),
		record(9500, 1.8),
		record(3620000, 1.9),
	}
	pair := Match(records, bounds, DefaultRevalidationGap)
	if pair.Pre == nil || pair.Pre.StartTime != 9500 || pair.Pre.AvgError != 1.8 {
		t.Fatalf("expected pre at 9500/1.8, got %+v", pair.Pre)
	}
	if pair.Post != nil {
		t.Fatalf("expected no post, got %+v", pair.Post)
	}
}

func TestMatchBoundariesAreStrict(t *testing.T) {
	records := []eyelog.QualityRecord{
		record(bounds.TaskStart, 1.0),                                     // exactly at task start: not pre
		record(bounds.TaskEnd+DefaultRevalidationGap.Milliseconds(), 1.1), // exactly at cutoff: not post
	}
	pair := Match(records, bounds, DefaultRevalidationGap)
	if pair.Pre != nil {
		t.Fatalf("record at task start must not be pre, got %+v", pair.Pre)
	}
	if pair.Post != nil {
		t.Fatalf("record at cutoff must not be post, got %+v", pair.Post)
	}
}

func TestMatchIgnoresCalibrationRecords(t *testing.T) {
	calibration := eyelog.QualityRecord{StartTime: 9000, Category: eyelog.CategoryCalibration}
	pair := Match([]eyelog.QualityRecord{calibration}, bounds, DefaultRevalidationGap)
	if pair.Pre != nil || pair.Post != nil {
		t.Fatalf("calibration records must not match, got %+v", pair)
	}
}

func TestMatchHandlesUnsortedInputDeterministically(t *testing.T) {
	records := []eyelog.QualityRecord{
		record(7400000, 3.0),
		record(9500, 1.8),
		record(4000, 1.2),
		record(7300000, 1.9),
	}
	first := Match(records, bounds, DefaultRevalidationGap)
	second := Match(records, bounds, DefaultRevalidationGap)
	if *first.Pre != *second.Pre || *first.Post != *second.Post {
		t.Fatalf("repeated match differed: %+v vs %+v", first, second)
	}
	if first.Pre.StartTime != 9500 || first.Post.StartTime != 7400000 {
		t.Fatalf("unexpected selection %+v", first)
	}
}

func TestMatchEmptyInput(t *testing.T) {
	pair := Match(nil, bounds, DefaultRevalidationGap)
	if pair.Pre != nil || pair.Post != nil {
		t.Fatalf("expected empty pair, got %+v", pair)
	}
	if pair.Complete() {
		t.Fatal("empty pair must not be complete")
	}
}

func TestMatchCustomGap(t *testing.T) {
	records := []eyelog.QualityRecord{record(3620001, 1.5)}
	pair := Match(records, bounds, 10*time.Second)
	if pair.Post == nil || pair.Post.StartTime != 3620001 {
		t.Fatalf("expected post with shortened gap, got %+v", pair.Post)
	}
}
