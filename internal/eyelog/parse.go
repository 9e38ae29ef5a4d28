package eyelog

import (
	"math"
	"strconv"
	"strings"
)

// Parse turns one raw event line into a QualityRecord. The second return
// value reports whether the line matched a result marker; callers must
// discard non-matches. Parsing has no side effects and is idempotent.
func Parse(participantID string, line RawEventLine) (QualityRecord, bool) {
	collapsed := collapseWhitespace(line.Message)
	if !strings.Contains(collapsed, calibrationMarker) && !strings.Contains(collapsed, validationMarker) {
		return QualityRecord{}, false
	}

	tokens := strings.Fields(collapsed)

	record := QualityRecord{
		ParticipantID: participantID,
		StartTime:     line.StartTime,
		Quality:       QualityUnknown,
		AvgError:      floatAt(tokens, tokenAvgError),
		MaxError:      floatAt(tokens, tokenMaxError),
		DegOffset:     floatAt(tokens, tokenDegOffset),
	}
	record.PixOffsetX, record.PixOffsetY = pixelPairAt(tokens, tokenPixOffset)

	for _, token := range tokens {
		if category, ok := categoryTokens[token]; ok && record.Category == "" {
			record.Category = category
		}
		if quality, ok := qualityTokens[token]; ok && record.Quality == QualityUnknown {
			record.Quality = quality
		}
	}
	if record.Category == "" {
		// Marker present but no category token: not a result line we can use.
		return QualityRecord{}, false
	}

	return record, true
}

// collapseWhitespace trims the line and reduces every interior whitespace
// run to a single space. The tracker pads columns with variable spacing, so
// positional extraction is only meaningful after this step.
func collapseWhitespace(message string) string {
	return strings.Join(strings.Fields(message), " ")
}

func floatAt(tokens []string, index int) float64 {
	if index >= len(tokens) {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(tokens[index], 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// pixelPairAt splits the "x,y" pixel-offset token into its components.
func pixelPairAt(tokens []string, index int) (float64, float64) {
	if index >= len(tokens) {
		return math.NaN(), math.NaN()
	}
	parts := strings.SplitN(tokens[index], ",", 2)
	if len(parts) != 2 {
		return math.NaN(), math.NaN()
	}
	x, errX := strconv.ParseFloat(parts[0], 64)
	y, errY := strconv.ParseFloat(parts[1], 64)
	if errX != nil {
		x = math.NaN()
	}
	if errY != nil {
		y = math.NaN()
	}
	return x, y
}
