package checks

import (
	"fmt"
	"math"

	"github.com/jonathan/offer-scorer/internal/types"
)

// ProofDensity counts proof signals (stats, money figures, multipliers, social proof)
// and scores them as occurrences per 100 words, scaled by 10 and capped at 100.
func ProofDensity(content *types.ParsedContent) types.MetricCheck {
	if !content.HasEvidence() || content.WordCount == 0 {
		return types.MetricCheck{
			Name:        NameProofDensity,
			Value:       0,
			RawValue:    types.CountRaw(0),
			Description: "No content to analyze for proof elements",
			Confidence:  wordConfidence(0, proofConfidenceWords),
		}
	}

	proofCount := countCatalog(ProofPatterns, content.Text)
	per100 := float64(proofCount) / float64(content.WordCount) * 100
	score := clampScore(math.Min(per100*10, 100))

	return types.MetricCheck{
		Name:        NameProofDensity,
		Value:       score,
		RawValue:    types.CountRaw(proofCount),
		Description: fmt.Sprintf("Found %d proof elements (%.2f per 100 words)", proofCount, per100),
		Confidence:  wordConfidence(content.WordCount, proofConfidenceWords),
	}
}

// proofConfidenceWords is the word count at which proof density is fully trusted
const proofConfidenceWords = 300
