package scoring

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/offer-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPage = "How it works. Trusted by 2,000 customers. Our verified clients see 3x more leads and 45% lower costs, " +
	"saving $12,000 a year. Read the case study. Step 1 connect your store. Step 2 import products. " +
	"Step 3 launch campaigns. Get set up in 5 minutes. Get started today or book a demo. Sign up now. " +
	"Try it risk-free with our 30-day money-back guarantee."

const weakPage = "Our company makes software for small businesses. We care about our customers and we work " +
	"hard every day to build good products. Contact information is on the about page."

func content(text string) *types.ParsedContent {
	return &types.ParsedContent{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Headings:  []string{},
		Links:     []types.Link{},
		Images:    []types.Image{},
		Success:   true,
	}
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func allDimensions(d types.DimensionScores) []float64 {
	return []float64{d.Value, d.Urgency, d.Certainty, d.Effort, d.Specificity, d.Proof}
}

func TestCalculateScores_ZeroContent(t *testing.T) {
	result := CalculateScores(content(""))

	assert.Equal(t, 0.0, result.OverallScore)
	for _, d := range allDimensions(result.DimensionScores) {
		assert.Equal(t, 0.0, d)
	}
	assert.Len(t, result.LeverDeltas, 6)
}

func TestCalculateScores_FailedParseDegradesGracefully(t *testing.T) {
	result := CalculateScores(types.FailedContent("unreadable"))

	require.NotNil(t, result)
	assert.Equal(t, 0.0, result.OverallScore)
	tag, _ := result.Metrics.GuaranteeParsing.RawValue.Tag()
	assert.Equal(t, "unknown", tag)
	assert.Len(t, result.LeverDeltas, 6)
	assert.NotEmpty(t, result.Timestamp)
}

func TestCalculateScores_NilContent(t *testing.T) {
	assert.NotPanics(t, func() {
		result := CalculateScores(nil)
		assert.Equal(t, 0.0, result.OverallScore)
	})
}

func TestScore_StrongPage(t *testing.T) {
	result := NewScorer(WithClock(fixedClock)).Score(content(strongPage))

	assert.Greater(t, result.OverallScore, 60.0)
	assert.Equal(t, 100.0, result.Metrics.GuaranteeParsing.Value)
	assert.Equal(t, 100.0, result.Metrics.TimeToFirstValue.Value)
	assert.Equal(t, 80.0, result.Metrics.CTADetection.Value)
	assert.Equal(t, 55.0, result.Metrics.MechanismPresence.Value)
	assert.Equal(t, 100.0, result.Metrics.ProofDensity.Value)
	assert.Equal(t, 50.0, result.Metrics.NumbersPer500Words.Value)
	assert.InDelta(t, 91.75, result.OverallScore, 0.001)
	assert.Equal(t, "2026-03-14T15:09:26Z", result.Timestamp)
}

func TestScore_WeakPage(t *testing.T) {
	result := CalculateScores(content(weakPage))

	assert.Less(t, result.OverallScore, 50.0)
	top := result.TopLever()
	require.NotNil(t, top)
	assert.Greater(t, top.Delta, 60.0)
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))

	first := scorer.Score(content(strongPage))
	second := scorer.Score(content(strongPage))

	assert.Equal(t, first, second)
}

func TestScore_DeterministicIgnoringTimestamp(t *testing.T) {
	first := CalculateScores(content(strongPage))
	second := CalculateScores(content(strongPage))

	first.Timestamp, second.Timestamp = "", ""
	assert.Equal(t, first, second)
}

func TestScore_WeightConsistency(t *testing.T) {
	for _, text := range []string{strongPage, weakPage, "Instant access. Learn more.", ""} {
		result := CalculateScores(content(text))
		d := result.DimensionScores
		w := DefaultDimensionWeights

		expected := d.Value*w.Value + d.Urgency*w.Urgency + d.Certainty*w.Certainty +
			d.Effort*w.Effort + d.Specificity*w.Specificity + d.Proof*w.Proof

		assert.InDelta(t, expected, result.OverallScore, 0.01, "text %q", text)
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	texts := []string{
		strongPage,
		weakPage,
		strings.Repeat(strongPage+" ", 20),
		strings.Repeat("1 2 3 $4 5% 6x ", 100),
		strings.Repeat("sign up buy now learn more ", 50),
	}

	for _, text := range texts {
		result := CalculateScores(content(text))
		assert.GreaterOrEqual(t, result.OverallScore, 0.0)
		assert.LessOrEqual(t, result.OverallScore, 100.0)
		for _, d := range allDimensions(result.DimensionScores) {
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 100.0)
		}
	}
}

func TestDimensions_Mapping(t *testing.T) {
	m := types.Metrics{
		ProofDensity:       types.MetricCheck{Value: 10},
		NumbersPer500Words: types.MetricCheck{Value: 20},
		CTADetection:       types.MetricCheck{Value: 30},
		GuaranteeParsing:   types.MetricCheck{Value: 40},
		TimeToFirstValue:   types.MetricCheck{Value: 50},
		MechanismPresence:  types.MetricCheck{Value: 60},
	}

	d := Dimensions(m)

	assert.Equal(t, 45.0, d.Value)       // guarantee, ttfv
	assert.Equal(t, 40.0, d.Urgency)     // cta, ttfv
	assert.Equal(t, 25.0, d.Certainty)   // proof, guarantee
	assert.Equal(t, 50.0, d.Effort)      // ttfv
	assert.Equal(t, 40.0, d.Specificity) // numbers, mechanism
	assert.Equal(t, 10.0, d.Proof)       // proof
}

func TestOverallScore_RoundsAndClamps(t *testing.T) {
	all100 := types.DimensionScores{Value: 100, Urgency: 100, Certainty: 100, Effort: 100, Specificity: 100, Proof: 100}
	assert.Equal(t, 100.0, OverallScore(all100, DefaultDimensionWeights))

	heavy := DimensionWeights{Value: 2, Urgency: 2, Certainty: 2, Effort: 2, Specificity: 2, Proof: 2}
	assert.Equal(t, 100.0, OverallScore(all100, heavy))

	d := types.DimensionScores{Value: 33.333, Urgency: 33.333, Certainty: 33.333, Effort: 33.333, Specificity: 33.333, Proof: 33.333}
	assert.Equal(t, 33.33, OverallScore(d, DefaultDimensionWeights))
}

func TestDefaultDimensionWeights_SumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultDimensionWeights.Sum(), 1e-9)
	assert.Equal(t, 0.22, DefaultDimensionWeights.Value)
	assert.Equal(t, 0.16, DefaultDimensionWeights.Urgency)
	assert.Equal(t, 0.22, DefaultDimensionWeights.Certainty)
	assert.Equal(t, 0.14, DefaultDimensionWeights.Effort)
	assert.Equal(t, 0.14, DefaultDimensionWeights.Specificity)
	assert.Equal(t, 0.12, DefaultDimensionWeights.Proof)
}

func TestRunChecks_MatchesNames(t *testing.T) {
	m := RunChecks(content(strongPage))

	assert.Equal(t, "Proof Density", m.ProofDensity.Name)
	assert.Equal(t, "Numbers per 500 Words", m.NumbersPer500Words.Name)
	assert.Equal(t, "CTA Detection", m.CTADetection.Name)
	assert.Equal(t, "Guarantee Parsing", m.GuaranteeParsing.Name)
	assert.Equal(t, "Time to First Value", m.TimeToFirstValue.Name)
	assert.Equal(t, "Mechanism Presence", m.MechanismPresence.Name)
}

func TestScorer_Fingerprint(t *testing.T) {
	assert.Empty(t, NewScorer().Fingerprint())
	assert.Empty(t, NewScorer(WithClock(fixedClock)).Fingerprint())

	heavyProof := DefaultDimensionWeights
	heavyProof.Value, heavyProof.Proof = 0.12, 0.22
	cheapCTA := slices.Clone(DefaultLeverTable)
	cheapCTA[2].EstimatedHours = 1

	weighted := NewScorer(WithWeights(heavyProof)).Fingerprint()
	levered := NewScorer(WithLeverTable(cheapCTA)).Fingerprint()

	assert.NotEmpty(t, weighted)
	assert.NotEmpty(t, levered)
	assert.NotEqual(t, weighted, levered)
	assert.Equal(t, weighted, NewScorer(WithWeights(heavyProof)).Fingerprint())
	assert.Empty(t, NewScorer(WithLeverTable(slices.Clone(DefaultLeverTable))).Fingerprint())
}
