package checks

import (
	"math"
	"regexp"

	"github.com/jonathan/offer-scorer/internal/types"
)

// Check is the signature shared by every metric check
type Check func(content *types.ParsedContent) types.MetricCheck

// Display names of the six checks
const (
	NameProofDensity       = "Proof Density"
	NameNumbersPer500Words = "Numbers per 500 Words"
	NameCTADetection       = "CTA Detection"
	NameGuaranteeParsing   = "Guarantee Parsing"
	NameTimeToFirstValue   = "Time to First Value"
	NameMechanismPresence  = "Mechanism Presence"
)

// clampScore bounds a score to 0-100
func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// countMatches counts non-overlapping matches of re in text
func countMatches(re *regexp.Regexp, text string) int {
	if text == "" {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// countCatalog sums matches for every pattern independently
func countCatalog(patterns []Pattern, text string) int {
	total := 0
	for _, p := range patterns {
		total += countMatches(p.Re, text)
	}
	return total
}

// wordConfidence grows linearly with word count until saturation words, then stays at 1.
func wordConfidence(wordCount int, saturation float64) *float64 {
	c := 0.0
	if wordCount > 0 {
		c = math.Min(float64(wordCount)/saturation, 1)
	}
	return &c
}
