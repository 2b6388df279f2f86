// Package types provides type definitions for structured data used throughout the offer-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DimensionScores are the six weighted rubric dimensions, each 0-100
type DimensionScores struct {
	Value       float64 `json:"value"`
	Urgency     float64 `json:"urgency"`
	Certainty   float64 `json:"certainty"`
	Effort      float64 `json:"effort"`
	Specificity float64 `json:"specificity"`
	Proof       float64 `json:"proof"`
}

// LeverDelta is one ranked improvement opportunity, one per metric
type LeverDelta struct {
	Lever            string  `json:"lever"`
	CurrentScore     float64 `json:"currentScore"`
	PotentialScore   float64 `json:"potentialScore"`
	Delta            float64 `json:"delta"`
	EVLiftPercentage float64 `json:"evLiftPercentage"`
	EVPerHour        float64 `json:"evPerHour"`
	EstimatedHours   float64 `json:"estimatedHours"`
}

// ScoringResult is the complete output of one analysis
type ScoringResult struct {
	OverallScore    float64         `json:"overallScore"` // Rounded to 2 decimal places
	DimensionScores DimensionScores `json:"dimensionScores"`
	Metrics         Metrics         `json:"metrics"`
	LeverDeltas     []LeverDelta    `json:"leverDeltas"` // Sorted by EVPerHour, descending
	Timestamp       string          `json:"timestamp"`   // RFC3339 format
}

// TopLever returns the highest-ranked lever, or nil when there are none.
func (r *ScoringResult) TopLever() *LeverDelta {
	if r == nil || len(r.LeverDeltas) == 0 {
		return nil
	}
	return &r.LeverDeltas[0]
}
