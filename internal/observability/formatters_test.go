package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/offer-scorer/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *types.ScoringResult {
	return &types.ScoringResult{
		OverallScore: 72.5,
		DimensionScores: types.DimensionScores{
			Value: 90, Urgency: 80, Certainty: 85, Effort: 100, Specificity: 40, Proof: 30,
		},
		Metrics: types.Metrics{
			ProofDensity:       types.MetricCheck{Name: "Proof Density", Value: 30, RawValue: types.CountRaw(3), Description: "3 proof elements in 100 words"},
			NumbersPer500Words: types.MetricCheck{Name: "Numbers per 500 Words", Value: 50, RawValue: types.CountRaw(5)},
			CTADetection:       types.MetricCheck{Name: "CTA Detection", Value: 80, RawValue: types.CountRaw(2)},
			GuaranteeParsing:   types.MetricCheck{Name: "Guarantee Parsing", Value: 95, RawValue: types.TagRaw("money-back")},
			TimeToFirstValue:   types.MetricCheck{Name: "Time to First Value", Value: 100, RawValue: types.TagRaw("in 5 minutes")},
			MechanismPresence:  types.MetricCheck{Name: "Mechanism Presence", Value: 30, RawValue: types.FlagRaw(true)},
		},
		LeverDeltas: []types.LeverDelta{
			{Lever: "numbers", CurrentScore: 50, PotentialScore: 100, Delta: 50, EVLiftPercentage: 0.12, EVPerHour: 0.03, EstimatedHours: 2},
			{Lever: "proof", CurrentScore: 30, PotentialScore: 100, Delta: 70, EVLiftPercentage: 0.15, EVPerHour: 0.02625, EstimatedHours: 4},
		},
		Timestamp: "2026-03-14T15:09:26Z",
	}
}

func TestPrintScoringResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoringResult(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "OFFER SCORE")
	assert.Contains(t, output, "72.50")
	assert.Contains(t, output, "Specificity")
	assert.Contains(t, output, "METRICS")
	assert.Contains(t, output, "Guarantee Parsing")
	assert.Contains(t, output, "raw: money-back")
	assert.Contains(t, output, "raw: true")
	assert.Contains(t, output, "3 proof elements in 100 words")
}

func TestPrintScoringResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoringResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintLevers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLevers(sampleResult().LeverDeltas)
	output := buf.String()

	assert.Contains(t, output, "IMPROVEMENT LEVERS")
	assert.Contains(t, output, "EV/hour")
	assert.Less(t, strings.Index(output, "numbers"), strings.Index(output, "proof"), "levers keep their ranked order")
	assert.Contains(t, output, "0.0300")
}

func TestPrintLevers_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLevers(nil)

	assert.Empty(t, buf.String())
}

func TestPrintParsedContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintParsedContent(&types.ParsedContent{
		Text:      "Get started",
		WordCount: 2,
		Headings:  []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"},
		Links:     []types.Link{{Text: "Get started", Href: "/go"}},
		Images:    []types.Image{},
		Success:   true,
	})
	output := buf.String()

	assert.Contains(t, output, "PARSED CONTENT")
	assert.Contains(t, output, "Words:    2")
	assert.Contains(t, output, "Links:    1")
	assert.Contains(t, output, "Five")
	assert.NotContains(t, output, "Six")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintParsedContent_Failed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintParsedContent(types.FailedContent("pdf parse error: corrupt document"))
	output := buf.String()

	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "corrupt document")
}

func TestPrintBox_FixedWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("x", 200)+"\n• bullet")

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", barWidth), bar(0))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(100))
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10), bar(50))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(140))
	assert.Equal(t, strings.Repeat("░", barWidth), bar(-3))
}
