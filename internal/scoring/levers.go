package scoring

import (
	"sort"

	"github.com/jonathan/offer-scorer/internal/types"
)

type leverScore struct {
	key   string
	score float64
}

// leverScores pairs each lever key with the metric it improves, in enumeration order
func leverScores(m types.Metrics) []leverScore {
	return []leverScore{
		{LeverProof, m.ProofDensity.Value},
		{LeverNumbers, m.NumbersPer500Words.Value},
		{LeverCTA, m.CTADetection.Value},
		{LeverGuarantee, m.GuaranteeParsing.Value},
		{LeverTimeToValue, m.TimeToFirstValue.Value},
		{LeverMechanism, m.MechanismPresence.Value},
	}
}

// PrioritizeLevers converts raw metric scores into improvement opportunities sorted by
// expected value per hour, highest first. Ties keep enumeration order.
// Levers missing from the table are skipped.
func PrioritizeLevers(metrics types.Metrics, table LeverTable) []types.LeverDelta {
	scores := leverScores(metrics)
	deltas := make([]types.LeverDelta, 0, len(scores))

	for _, s := range scores {
		c, ok := table.Lookup(s.key)
		if !ok || c.EstimatedHours <= 0 {
			continue
		}

		current := clamp(s.score)
		delta := potentialScore - current
		deltas = append(deltas, types.LeverDelta{
			Lever:            s.key,
			CurrentScore:     current,
			PotentialScore:   potentialScore,
			Delta:            delta,
			EVLiftPercentage: c.EVLiftPercentage,
			EVPerHour:        c.EVLiftPercentage * (delta / 100) / c.EstimatedHours,
			EstimatedHours:   c.EstimatedHours,
		})
	}

	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].EVPerHour > deltas[j].EVPerHour
	})

	return deltas
}
