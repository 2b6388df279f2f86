package scoring

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/jonathan/offer-scorer/internal/checks"
	"github.com/jonathan/offer-scorer/internal/types"
	"golang.org/x/sync/errgroup"
)

// Scorer runs the metric checks and aggregates them. The zero value is not usable;
// use NewScorer.
type Scorer struct {
	weights DimensionWeights
	levers  LeverTable
	now     func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithClock overrides the clock used for ScoringResult.Timestamp
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// WithWeights overrides the dimension weights
func WithWeights(w DimensionWeights) Option {
	return func(s *Scorer) { s.weights = w }
}

// WithLeverTable overrides the lever constants
func WithLeverTable(t LeverTable) Option {
	return func(s *Scorer) { s.levers = t }
}

// NewScorer creates a Scorer with the default rubric
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weights: DefaultDimensionWeights,
		levers:  DefaultLeverTable,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fingerprint identifies the rubric the scorer applies. It is empty for the default
// weights and lever table, so results scored with a custom rubric never share a
// cache entry with default ones. The clock is not part of the rubric.
func (s *Scorer) Fingerprint() string {
	if s.weights == DefaultDimensionWeights && slices.Equal(s.levers, DefaultLeverTable) {
		return ""
	}
	return fmt.Sprintf("%+v|%+v", s.weights, s.levers)
}

var defaultScorer = NewScorer()

// CalculateScores scores content with the default rubric.
func CalculateScores(content *types.ParsedContent) *types.ScoringResult {
	return defaultScorer.Score(content)
}

// Score runs all six checks, maps them to dimensions and ranks the levers.
// It never fails: nil or unparsed content yields a fully formed all-zero result.
func (s *Scorer) Score(content *types.ParsedContent) *types.ScoringResult {
	if content == nil {
		content = types.FailedContent("no content")
	}

	metrics := RunChecks(content)
	dims := Dimensions(metrics)

	return &types.ScoringResult{
		OverallScore:    OverallScore(dims, s.weights),
		DimensionScores: dims,
		Metrics:         metrics,
		LeverDeltas:     PrioritizeLevers(metrics, s.levers),
		Timestamp:       s.now().UTC().Format(time.RFC3339),
	}
}

// RunChecks runs the six checks concurrently. Each check writes only its own field,
// so the result matches a sequential run.
func RunChecks(content *types.ParsedContent) types.Metrics {
	var m types.Metrics
	var g errgroup.Group

	run := func(dst *types.MetricCheck, check checks.Check) {
		g.Go(func() error {
			*dst = check(content)
			return nil
		})
	}

	run(&m.ProofDensity, checks.ProofDensity)
	run(&m.NumbersPer500Words, checks.NumbersPer500Words)
	run(&m.CTADetection, checks.DetectCTA)
	run(&m.GuaranteeParsing, checks.ParseGuarantee)
	run(&m.TimeToFirstValue, checks.TimeToFirstValue)
	run(&m.MechanismPresence, checks.MechanismPresence)

	_ = g.Wait() // checks never return errors
	return m
}

// Dimensions maps metric values onto the six rubric dimensions
func Dimensions(m types.Metrics) types.DimensionScores {
	proof := m.ProofDensity.Value
	numbers := m.NumbersPer500Words.Value
	cta := m.CTADetection.Value
	guarantee := m.GuaranteeParsing.Value
	ttfv := m.TimeToFirstValue.Value
	mechanism := m.MechanismPresence.Value

	return types.DimensionScores{
		Value:       clamp(mean(guarantee, ttfv)),
		Urgency:     clamp(mean(cta, ttfv)),
		Certainty:   clamp(mean(proof, guarantee)),
		Effort:      clamp(ttfv),
		Specificity: clamp(mean(numbers, mechanism)),
		Proof:       clamp(proof),
	}
}

// OverallScore is the weighted sum of the dimensions, clamped to 0-100 and
// rounded to two decimal places.
func OverallScore(d types.DimensionScores, w DimensionWeights) float64 {
	total := d.Value*w.Value +
		d.Urgency*w.Urgency +
		d.Certainty*w.Certainty +
		d.Effort*w.Effort +
		d.Specificity*w.Specificity +
		d.Proof*w.Proof

	return round2(clamp(total))
}

func mean(a, b float64) float64 {
	return (a + b) / 2
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
