// Package drift computes before/after tracking-accuracy deltas from a
// participant's matched validation pair.
package drift

import (
	"github.com/sokolhessnerlab/csn/internal/validation"
)

// Report holds the per-participant drift metrics between the pre-task and
// post-task validation checks. Every change is post minus pre. Values are
// raw floating point; rounding is a presentation concern.
type Report struct {
	ParticipantID        string
	AvgErrorChange       float64 // degrees
	MaxErrorChange       float64 // degrees
	PixXOffsetChange     float64 // pixels
	PixYOffsetChange     float64 // pixels
	PreAvgError          float64 // degrees
	PostAvgError         float64 // degrees
	PreOffsetDistance    float64 // pixels
	PostOffsetDistance   float64 // pixels
	OffsetDistanceChange float64 // pixels
}

// Compute derives the drift report for one matched pair. It reports false
// when the pair is incomplete or either side lacks an average error; no
// partial deltas are produced in that case.
func Compute(pair validation.Pair) (Report, bool) {
	if !pair.Complete() {
		return Report{}, false
	}
	pre, post := *pair.Pre, *pair.Post
	if !pre.HasAvgError() || !post.HasAvgError() {
		return Report{}, false
	}

	preDistance := pre.OffsetDistance()
	postDistance := post.OffsetDistance()
	return Report{
		ParticipantID:        pair.ParticipantID,
		AvgErrorChange:       post.AvgError - pre.AvgError,
		MaxErrorChange:       post.MaxError - pre.MaxError,
		PixXOffsetChange:     post.PixOffsetX - pre.PixOffsetX,
		PixYOffsetChange:     post.PixOffsetY - pre.PixOffsetY,
		PreAvgError:          pre.AvgError,
		PostAvgError:         post.AvgError,
		PreOffsetDistance:    preDistance,
		PostOffsetDistance:   postDistance,
		OffsetDistanceChange: postDistance - preDistance,
	}, true
}
