package checks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/offer-scorer/internal/types"
)

const (
	// immediacyBaseScore applies when only vague speed words are present
	immediacyBaseScore = 75
	perExtraTimeMatch  = 3
	maxTimeMatchBonus  = 15
	// TimeToValueImmediate is the raw tag when only immediacy words were found
	TimeToValueImmediate = "immediate"
	// TimeToValueNone is the raw tag when no time claim was found
	TimeToValueNone = "none"
)

// TimeToFirstValue scores how quickly the offer promises a result.
// An explicit "in N <unit>" claim is scored by the unit table; the fastest claim wins.
// Otherwise immediacy words score a flat base. Extra matches add a capped bonus.
func TimeToFirstValue(content *types.ParsedContent) types.MetricCheck {
	if !content.HasEvidence() {
		return noTimeToValue("No content to analyze for time to value")
	}

	explicit := TimeUnitPattern.FindAllStringSubmatch(content.Text, -1)
	immediacy := countMatches(ImmediacyPattern, content.Text)
	matchCount := len(explicit) + immediacy

	var base float64
	var raw string
	for _, m := range explicit {
		if s := unitScore(m[1], m[2]); s > base {
			base = s
			raw = strings.ToLower(strings.Join(strings.Fields(m[0]), " "))
		}
	}
	if base == 0 {
		if immediacy == 0 {
			return noTimeToValue("No time-to-value claim found")
		}
		base = immediacyBaseScore
		raw = TimeToValueImmediate
	}

	bonus := min(float64((matchCount-1)*perExtraTimeMatch), maxTimeMatchBonus)

	return types.MetricCheck{
		Name:        NameTimeToFirstValue,
		Value:       clampScore(base + bonus),
		RawValue:    types.TagRaw(raw),
		Description: fmt.Sprintf("Fastest claim %q (%d time signals)", raw, matchCount),
	}
}

func noTimeToValue(description string) types.MetricCheck {
	return types.MetricCheck{
		Name:        NameTimeToFirstValue,
		Value:       0,
		RawValue:    types.TagRaw(TimeToValueNone),
		Description: description,
	}
}

// unitScore maps a magnitude and unit onto the time-to-value table
func unitScore(magnitude, unit string) float64 {
	n, err := strconv.Atoi(magnitude)
	if err != nil {
		return 0
	}

	unit = strings.ToLower(unit)
	switch {
	case strings.HasPrefix(unit, "sec"), strings.HasPrefix(unit, "min"):
		return 100
	case strings.HasPrefix(unit, "h"):
		switch {
		case n <= 1:
			return 90
		case n <= 24:
			return 80
		default:
			return 70
		}
	case strings.HasPrefix(unit, "day"):
		switch {
		case n <= 1:
			return 70
		case n <= 7:
			return 60
		default:
			return 50
		}
	default:
		return 0
	}
}
