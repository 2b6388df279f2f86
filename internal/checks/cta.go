package checks

import (
	"fmt"

	"github.com/jonathan/offer-scorer/internal/types"
)

// DetectCTA counts call-to-action phrases in the body text and in link texts.
// A CTA that appears both as a link and in the surrounding text counts twice.
func DetectCTA(content *types.ParsedContent) types.MetricCheck {
	if !content.HasEvidence() {
		return types.MetricCheck{
			Name:        NameCTADetection,
			Value:       0,
			RawValue:    types.CountRaw(0),
			Description: "No content to analyze for calls to action",
		}
	}

	textMatches := countCatalog(CTAPatterns, content.Text)
	linkMatches := 0
	for _, link := range content.Links {
		linkMatches += countCatalog(CTAPatterns, link.Text)
	}
	total := textMatches + linkMatches

	return types.MetricCheck{
		Name:        NameCTADetection,
		Value:       clampScore(ctaScore(total)),
		RawValue:    types.CountRaw(total),
		Description: fmt.Sprintf("Found %d calls to action (%d in text, %d in links)", total, textMatches, linkMatches),
	}
}

// ctaScore is a step function: too few CTAs leave conversions on the table,
// too many dilute each other.
func ctaScore(n int) float64 {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return 50
	case n <= 3:
		return 80
	case n <= 5:
		return 100
	default:
		return max(100-float64(n-5)*5, 60)
	}
}
