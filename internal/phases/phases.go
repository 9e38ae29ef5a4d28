// Package phases derives per-participant recording phase boundaries from the
// tracker's recordings stream. The hardware starts a recording segment at
// each of calibration, validation, task, and revalidation in that fixed
// order, so the first four marker timestamps are the phase boundaries.
package phases

import (
	"errors"
	"fmt"
	"time"
)

// markerCount is the number of recording markers one complete session emits.
const markerCount = 4

// ErrMalformedRecording indicates a participant's recordings stream carries
// fewer than the four expected phase markers. The caller converts this into
// an exclusion for that participant; it never aborts a batch.
var ErrMalformedRecording = errors.New("malformed recording")

// Boundaries holds the four phase-boundary timestamps for one participant.
// All values are milliseconds, carried verbatim from the recordings stream,
// and non-decreasing because recording phases occur in fixed hardware order.
type Boundaries struct {
	ParticipantID string
	Calibration   int64
	Validation    int64
	TaskStart     int64
	TaskEnd       int64 // revalidation recording start
}

// Resolve extracts phase boundaries from the ordered marker timestamps of
// one participant's recordings stream. Timestamps are returned verbatim;
// unit conversion is the caller's presentation concern.
func Resolve(participantID string, markers []int64) (Boundaries, error) {
	if len(markers) < markerCount {
		return Boundaries{}, fmt.Errorf("%w: participant %s has %d phase markers, need %d",
			ErrMalformedRecording, participantID, len(markers), markerCount)
	}
	return Boundaries{
		ParticipantID: participantID,
		Calibration:   markers[0],
		Validation:    markers[1],
		TaskStart:     markers[2],
		TaskEnd:       markers[3],
	}, nil
}

// TaskDuration returns the elapsed time between task start and task end.
func (b Boundaries) TaskDuration() time.Duration {
	return time.Duration(b.TaskEnd-b.TaskStart) * time.Millisecond
}

// SetupDuration returns the elapsed time from calibration start to task start.
func (b Boundaries) SetupDuration() time.Duration {
	return time.Duration(b.TaskStart-b.Calibration) * time.Millisecond
}
