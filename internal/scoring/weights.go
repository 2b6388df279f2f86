// Package scoring aggregates metric checks into dimension scores, an overall score
// and a ranked list of improvement levers.
package scoring

// DimensionWeights are the per-dimension weights of the overall score. They sum to 1.
type DimensionWeights struct {
	Value       float64 `json:"value"`
	Urgency     float64 `json:"urgency"`
	Certainty   float64 `json:"certainty"`
	Effort      float64 `json:"effort"`
	Specificity float64 `json:"specificity"`
	Proof       float64 `json:"proof"`
}

// DefaultDimensionWeights is the product rubric. Changing any value changes every
// published score.
var DefaultDimensionWeights = DimensionWeights{
	Value:       0.22,
	Urgency:     0.16,
	Certainty:   0.22,
	Effort:      0.14,
	Specificity: 0.14,
	Proof:       0.12,
}

// Sum returns the total weight
func (w DimensionWeights) Sum() float64 {
	return w.Value + w.Urgency + w.Certainty + w.Effort + w.Specificity + w.Proof
}

// Lever keys, in enumeration order. Ties in the ranking keep this order.
const (
	LeverProof       = "proof"
	LeverNumbers     = "numbers"
	LeverCTA         = "cta"
	LeverGuarantee   = "guarantee"
	LeverTimeToValue = "timeToValue"
	LeverMechanism   = "mechanism"
)

// LeverConstants are the heuristic estimates attached to one lever
type LeverConstants struct {
	Key              string  `json:"key"`
	EVLiftPercentage float64 `json:"evLiftPercentage"` // Expected conversion lift of a full fix
	EstimatedHours   float64 `json:"estimatedHours"`   // Hours to implement the fix
}

// LeverTable lists every lever in enumeration order
type LeverTable []LeverConstants

// DefaultLeverTable holds the product-tuned lift and effort estimates.
var DefaultLeverTable = LeverTable{
	{Key: LeverProof, EVLiftPercentage: 0.15, EstimatedHours: 4},
	{Key: LeverNumbers, EVLiftPercentage: 0.12, EstimatedHours: 2},
	{Key: LeverCTA, EVLiftPercentage: 0.18, EstimatedHours: 3},
	{Key: LeverGuarantee, EVLiftPercentage: 0.20, EstimatedHours: 5},
	{Key: LeverTimeToValue, EVLiftPercentage: 0.14, EstimatedHours: 6},
	{Key: LeverMechanism, EVLiftPercentage: 0.16, EstimatedHours: 8},
}

// Lookup returns the constants for a lever key
func (t LeverTable) Lookup(key string) (LeverConstants, bool) {
	for _, c := range t {
		if c.Key == key {
			return c, true
		}
	}
	return LeverConstants{}, false
}

// potentialScore is the ceiling every lever is measured against
const potentialScore = 100.0
