package checks

import (
	"fmt"
	"strings"

	"github.com/jonathan/offer-scorer/internal/types"
)

const mechanismConfidenceWords = 200

// MechanismPresence checks whether the copy explains how the offer delivers its result.
// Points are additive per indicator, plus points for a numbered walkthrough and a bonus
// for pages that are dense with mechanism language.
func MechanismPresence(content *types.ParsedContent) types.MetricCheck {
	if !content.HasEvidence() {
		return types.MetricCheck{
			Name:        NameMechanismPresence,
			Value:       0,
			RawValue:    types.FlagRaw(false),
			Description: "No content to analyze for mechanism",
			Confidence:  wordConfidence(0, mechanismConfidenceWords),
		}
	}

	score := 0.0
	indicators := 0
	var found []string

	for _, ind := range MechanismIndicators {
		n := countMatches(ind.Re, content.Text)
		if n == 0 {
			continue
		}
		score += ind.Points
		indicators += n
		found = append(found, ind.Name)
	}

	steps := countCatalog(StepMarkerPatterns, content.Text)
	indicators += steps
	if steps >= stepMarkerThreshold {
		score += stepMarkerPoints
		found = append(found, fmt.Sprintf("%d numbered steps", steps))
	}

	if indicators > indicatorBonusThreshold {
		score += indicatorBonus
	}

	description := "No mechanism explanation found"
	if len(found) > 0 {
		description = fmt.Sprintf("Mechanism signals: %s (%d indicators)", strings.Join(found, ", "), indicators)
	}

	return types.MetricCheck{
		Name:        NameMechanismPresence,
		Value:       clampScore(score),
		RawValue:    types.FlagRaw(indicators > 0),
		Description: description,
		Confidence:  wordConfidence(content.WordCount, mechanismConfidenceWords),
	}
}
