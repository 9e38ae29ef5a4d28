package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/sokolhessnerlab/csn/internal/logging"
)

// RunBatch processes participants concurrently on opts.Workers workers and
// returns one outcome per input, ordered by participant id. Participants
// never block each other; cancellation stops dispatching new participants
// but outcomes already produced are returned.
func RunBatch(ctx context.Context, logger *slog.Logger, inputs []Input, opts Options) []Outcome {
	logger = logging.NewComponentLogger(logger, "pipeline")

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan Input)
	outcomes := make(chan Outcome)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for input := range jobs {
				outcomes <- RunParticipant(input, opts)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, input := range inputs {
			select {
			case <-ctx.Done():
				return
			case jobs <- input:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single collector: the only place batch state is accumulated.
	collected := make([]Outcome, 0, len(inputs))
	for outcome := range outcomes {
		if outcome.Err != nil {
			logger.Warn("participant degraded to exclusion",
				logging.String(logging.FieldParticipant, outcome.ParticipantID),
				logging.Error(outcome.Err),
			)
		} else {
			logger.Debug("participant processed",
				logging.String(logging.FieldParticipant, outcome.ParticipantID),
				logging.Bool("included", outcome.Decision.Included),
				logging.String("reason", string(outcome.Decision.Reason)),
			)
		}
		collected = append(collected, outcome)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].ParticipantID < collected[j].ParticipantID
	})
	return collected
}
