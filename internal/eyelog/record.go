package eyelog

import "math"

// Category identifies which tracker procedure produced a result line.
type Category string

const (
	CategoryCalibration Category = "calibration"
	CategoryValidation  Category = "validation"
)

// Quality is the tracker's own grade for a calibration or validation result.
type Quality string

const (
	QualityGood    Quality = "good"
	QualityFair    Quality = "fair"
	QualityPoor    Quality = "poor"
	QualityUnknown Quality = "unknown"
)

// RawEventLine is one row of the per-participant event log. It is consumed
// by Parse and not retained afterward.
type RawEventLine struct {
	Message   string
	StartTime int64 // milliseconds
}

// QualityRecord is the structured form of one calibration or validation
// result line. Numeric fields the tracker omitted are NaN. Records are
// immutable once created.
type QualityRecord struct {
	ParticipantID string
	StartTime     int64 // milliseconds, ordering anchor
	Category      Category
	Quality       Quality
	AvgError      float64 // degrees
	MaxError      float64 // degrees
	DegOffset     float64 // degrees
	PixOffsetX    float64 // pixels
	PixOffsetY    float64 // pixels
}

// HasAvgError reports whether the record carries a usable average error.
func (r QualityRecord) HasAvgError() bool {
	return !math.IsNaN(r.AvgError)
}

// OffsetDistance returns the Euclidean magnitude of the pixel offset.
// NaN components propagate into the result.
func (r QualityRecord) OffsetDistance() float64 {
	return math.Sqrt(r.PixOffsetX*r.PixOffsetX + r.PixOffsetY*r.PixOffsetY)
}
