package eyelog

// Result-line markers written by the tracker. A line carrying neither is not
// a calibration/validation result and is ignored by Parse. Markers are
// checked after whitespace collapse so padding never defeats the match.
const (
	calibrationMarker = "!CAL CALIBRATION"
	validationMarker  = "!CAL VALIDATION"
)

// Zero-based token positions within a collapsed result line. The tracker's
// line grammar is fixed:
//
//	!CAL VALIDATION HV9 R RIGHT GOOD ERROR 0.38 avg. 1.02 max OFFSET 0.29 deg. 8.7,-4.5 pix.
//	 0    1          2  3  4     5    6     7    8    9    10   11     12   13   14      15
//
// Calibration lines share the prefix but stop after the quality grade, so
// every numeric position may be absent.
const (
	tokenAvgError  = 7
	tokenMaxError  = 9
	tokenDegOffset = 12
	tokenPixOffset = 14
)

var qualityTokens = map[string]Quality{
	"GOOD": QualityGood,
	"FAIR": QualityFair,
	"POOR": QualityPoor,
}

var categoryTokens = map[string]Category{
	"CALIBRATION": CategoryCalibration,
	"VALIDATION":  CategoryValidation,
}
