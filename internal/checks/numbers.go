package checks

import (
	"fmt"

	"github.com/jonathan/offer-scorer/internal/types"
)

// Ideal band for numeric tokens per 500 words
const (
	idealNumbersLow  = 10.0
	idealNumbersHigh = 30.0

	// overloadFloor is the lowest score a number-heavy page can fall to
	overloadFloor = 50.0

	numbersConfidenceWords = 500
)

// NumbersPer500Words measures how specific the copy is by counting numeric tokens.
// Density below the ideal band ramps up to 70, inside it ramps 70-100,
// and above it decays by 2 points per extra number down to a floor of 50.
func NumbersPer500Words(content *types.ParsedContent) types.MetricCheck {
	if !content.HasEvidence() || content.WordCount == 0 {
		return types.MetricCheck{
			Name:        NameNumbersPer500Words,
			Value:       0,
			RawValue:    types.CountRaw(0),
			Description: "No content to analyze for numbers",
			Confidence:  wordConfidence(0, numbersConfidenceWords),
		}
	}

	count := countMatches(NumberPattern, content.Text)
	per500 := float64(count) / float64(content.WordCount) * 500

	return types.MetricCheck{
		Name:        NameNumbersPer500Words,
		Value:       clampScore(numbersScore(per500)),
		RawValue:    types.CountRaw(count),
		Description: fmt.Sprintf("Found %d numbers (%.1f per 500 words, ideal %.0f-%.0f)", count, per500, idealNumbersLow, idealNumbersHigh),
		Confidence:  wordConfidence(content.WordCount, numbersConfidenceWords),
	}
}

// numbersScore maps a per-500-words density onto the piecewise curve
func numbersScore(per500 float64) float64 {
	switch {
	case per500 < idealNumbersLow:
		return (per500 / idealNumbersLow) * 70
	case per500 <= idealNumbersHigh:
		return 70 + (per500-idealNumbersLow)/(idealNumbersHigh-idealNumbersLow)*30
	default:
		return max(100-(per500-idealNumbersHigh)*2, overloadFloor)
	}
}
