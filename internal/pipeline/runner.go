package pipeline

import (
	"time"

	"github.com/sokolhessnerlab/csn/internal/drift"
	"github.com/sokolhessnerlab/csn/internal/exclusion"
	"github.com/sokolhessnerlab/csn/internal/eyelog"
	"github.com/sokolhessnerlab/csn/internal/phases"
	"github.com/sokolhessnerlab/csn/internal/validation"
)

// Input is everything one participant's pipeline run needs.
type Input struct {
	ParticipantID  string
	Events         []eyelog.RawEventLine
	RecordingTimes []int64
}

// Options are the policy parameters threaded through every stage.
type Options struct {
	// Workers bounds concurrent participants in RunBatch.
	Workers int
	// ErrorThreshold is the exclusion policy's maximum acceptable average
	// validation error in degrees.
	ErrorThreshold float64
	// RevalidationGap is how far past task end the post-task validation
	// must fall.
	RevalidationGap time.Duration
}

// Defaults returns Options carrying the policy defaults.
func Defaults() Options {
	return Options{
		Workers:         1,
		ErrorThreshold:  exclusion.DefaultErrorThreshold,
		RevalidationGap: validation.DefaultRevalidationGap,
	}
}

// Outcome is the result of one participant's pipeline run. Decision is
// always populated; Drift is nil when no complete validation pair exists.
// Err records a per-participant failure that was degraded to an exclusion.
type Outcome struct {
	ParticipantID string
	Decision      exclusion.Decision
	Drift         *drift.Report
	Pair          validation.Pair
	Err           error
}

// RunParticipant executes the stages for one participant in sequence. It is
// a pure function of its input: no shared state, no side effects, and a
// failure always degrades to an exclusion decision.
func RunParticipant(input Input, opts Options) Outcome {
	outcome := Outcome{ParticipantID: input.ParticipantID}

	records := make([]eyelog.QualityRecord, 0, len(input.Events))
	for _, line := range input.Events {
		if record, ok := eyelog.Parse(input.ParticipantID, line); ok {
			records = append(records, record)
		}
	}

	bounds, err := phases.Resolve(input.ParticipantID, input.RecordingTimes)
	if err != nil {
		outcome.Err = err
		outcome.Decision = exclusion.MissingValidationDecision(input.ParticipantID)
		return outcome
	}

	outcome.Pair = validation.Match(records, bounds, opts.RevalidationGap)
	if report, ok := drift.Compute(outcome.Pair); ok {
		outcome.Drift = &report
	}
	outcome.Decision = exclusion.Decide(outcome.Pair, opts.ErrorThreshold)
	return outcome
}
