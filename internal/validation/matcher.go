// Package validation selects the pre-task and post-task validation records
// that bracket a participant's task phase. Drift between the two is the
// session's data-quality signal.
package validation

import (
	"sort"
	"time"

	"github.com/sokolhessnerlab/csn/internal/eyelog"
	"github.com/sokolhessnerlab/csn/internal/phases"
)

// DefaultRevalidationGap is how far past task end a validation must fall to
// count as the post-task check, covering task overtime before the tracker
// operator ran revalidation.
const DefaultRevalidationGap = time.Hour

// Pair holds the matched pre- and post-task validation records for one
// participant. Either side may be nil; missing data is a normal outcome,
// not an error.
type Pair struct {
	ParticipantID string
	Pre           *eyelog.QualityRecord
	Post          *eyelog.QualityRecord
}

// Complete reports whether both sides of the pair were found.
func (p Pair) Complete() bool {
	return p.Pre != nil && p.Post != nil
}

// Match picks the validation records bracketing the task phase:
//
//   - Pre is the last validation strictly before task start.
//   - Post is the last validation strictly after task end plus gap.
//
// Records may arrive unsorted. Sorting is stable and keyed solely on
// StartTime so repeated runs over the same input select the same records.
func Match(records []eyelog.QualityRecord, bounds phases.Boundaries, gap time.Duration) Pair {
	pair := Pair{ParticipantID: bounds.ParticipantID}

	validations := make([]eyelog.QualityRecord, 0, len(records))
	for _, record := range records {
		if record.Category == eyelog.CategoryValidation {
			validations = append(validations, record)
		}
	}
	sort.SliceStable(validations, func(i, j int) bool {
		return validations[i].StartTime < validations[j].StartTime
	})

	postCutoff := bounds.TaskEnd + gap.Milliseconds()
	for i := range validations {
		record := validations[i]
		switch {
		case record.StartTime < bounds.TaskStart:
			pair.Pre = &validations[i]
		case record.StartTime > postCutoff:
			pair.Post = &validations[i]
		}
	}
	return pair
}
