// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/offer-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", boxWidth-4-len([]rune(line))))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintParsedContent outputs what the parser extracted from the document.
func (p *Printer) PrintParsedContent(content *types.ParsedContent) {
	if content == nil {
		return
	}

	var sb strings.Builder
	if !content.Success {
		sb.WriteString("Status:   FAILED\n")
		sb.WriteString(fmt.Sprintf("Error:    %s", content.Error))
		p.printBox("PARSED CONTENT", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Words:    %d\n", content.WordCount))
	sb.WriteString(fmt.Sprintf("Links:    %d\n", len(content.Links)))
	sb.WriteString(fmt.Sprintf("Images:   %d\n", len(content.Images)))

	if len(content.Headings) > 0 {
		sb.WriteString("\nHeadings:\n")
		count := min(len(content.Headings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", content.Headings[i]))
		}
		if len(content.Headings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(content.Headings)-maxItemsToShow))
		}
	}

	p.printBox("PARSED CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoringResult outputs the overall score, the six dimensions and each metric.
func (p *Printer) PrintScoringResult(result *types.ScoringResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %6.2f  %s\n\n", result.OverallScore, bar(result.OverallScore)))

	d := result.DimensionScores
	dimensions := []struct {
		label string
		value float64
	}{
		{"Value", d.Value},
		{"Urgency", d.Urgency},
		{"Certainty", d.Certainty},
		{"Effort", d.Effort},
		{"Specificity", d.Specificity},
		{"Proof", d.Proof},
	}
	for _, dim := range dimensions {
		sb.WriteString(fmt.Sprintf("%-12s  %6.2f  %s\n", dim.label, dim.value, bar(dim.value)))
	}

	p.printBox("OFFER SCORE", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintMetrics(result.Metrics)
}

// PrintMetrics outputs each metric check with its raw evidence.
func (p *Printer) PrintMetrics(m types.Metrics) {
	var sb strings.Builder
	for i, check := range []types.MetricCheck{
		m.ProofDensity,
		m.NumbersPer500Words,
		m.CTADetection,
		m.GuaranteeParsing,
		m.TimeToFirstValue,
		m.MechanismPresence,
	} {
		sb.WriteString(fmt.Sprintf("%-22s %6.2f  raw: %s\n", check.Name, check.Value, check.RawValue.String()))
		if check.Description != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", check.Description))
		}
		if i < 5 {
			sb.WriteString("\n")
		}
	}

	p.printBox("METRICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLevers outputs the improvement levers in ranked order.
func (p *Printer) PrintLevers(deltas []types.LeverDelta) {
	if len(deltas) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-3s %-12s %6s %6s %5s %8s\n", "#", "Lever", "Score", "Delta", "Hours", "EV/hour"))
	for i, d := range deltas {
		sb.WriteString(fmt.Sprintf("%-3d %-12s %6.1f %6.1f %5.1f %8.4f\n",
			i+1, d.Lever, d.CurrentScore, d.Delta, d.EstimatedHours, d.EVPerHour))
	}

	p.printBox("IMPROVEMENT LEVERS", strings.TrimSuffix(sb.String(), "\n"))
}

// bar renders a 0-100 score as a fixed-width bar
func bar(score float64) string {
	filled := int(score / 100 * barWidth)
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
