// Package exclusion decides whether a participant's eye-tracking data is
// trustworthy enough for analysis and records an auditable reason.
package exclusion

import (
	"github.com/sokolhessnerlab/csn/internal/validation"
)

// DefaultErrorThreshold is the vendor-recommended acceptable average
// validation error in degrees. Both session endpoints must stay under it:
// drift undetected at either boundary invalidates gaze accuracy for the
// adjoining half of the session.
const DefaultErrorThreshold = 2.5

// Reason explains an exclusion decision.
type Reason string

const (
	ReasonOK                    Reason = "ok"
	ReasonMissingValidation     Reason = "missing_validation"
	ReasonQualityBelowThreshold Reason = "quality_below_threshold"
)

// Decision is the terminal per-participant verdict. It is never mutated
// after creation; downstream reporting treats it as the audit trail.
type Decision struct {
	ParticipantID string
	Included      bool
	Reason        Reason
}

// Decide applies the exclusion rules to one participant's validation pair.
// Rules are evaluated in order and the first match wins:
//
//  1. either validation endpoint missing or unusable -> MissingValidation
//  2. avg error at or above threshold at either endpoint -> QualityBelowThreshold
//  3. otherwise included
//
// A record without a parseable average error cannot witness session quality,
// so it counts as missing rather than passing by default.
func Decide(pair validation.Pair, threshold float64) Decision {
	decision := Decision{ParticipantID: pair.ParticipantID}

	if !pair.Complete() || !pair.Pre.HasAvgError() || !pair.Post.HasAvgError() {
		decision.Reason = ReasonMissingValidation
		return decision
	}
	if pair.Pre.AvgError >= threshold || pair.Post.AvgError >= threshold {
		decision.Reason = ReasonQualityBelowThreshold
		return decision
	}

	decision.Included = true
	decision.Reason = ReasonOK
	return decision
}

// MissingValidationDecision builds the exclusion recorded for participants
// whose pipeline failed before matching, e.g. on a malformed recording.
func MissingValidationDecision(participantID string) Decision {
	return Decision{ParticipantID: participantID, Included: false, Reason: ReasonMissingValidation}
}
