package checks

import (
	"fmt"
	"strings"

	"github.com/jonathan/offer-scorer/internal/types"
)

const (
	// perExtraGuarantee is added for each distinct guarantee type beyond the first
	perExtraGuarantee = 5
	maxGuaranteeBonus = 15
)

// Raw tags reported by ParseGuarantee when no guarantee type is identified
const (
	GuaranteeNone    = "none"
	GuaranteeUnknown = "unknown"
)

// ParseGuarantee looks for risk-reversal language. The strongest matching type sets
// the base score and every additional distinct type adds a small stacking bonus.
// RawValue lists the matched types in catalog order, joined by commas.
func ParseGuarantee(content *types.ParsedContent) types.MetricCheck {
	if !content.HasEvidence() {
		return types.MetricCheck{
			Name:        NameGuaranteeParsing,
			Value:       0,
			RawValue:    types.TagRaw(GuaranteeUnknown),
			Description: "Content could not be parsed for guarantees",
		}
	}

	found := make([]string, 0, len(GuaranteeCatalog))
	baseScore := 0.0
	for _, g := range GuaranteeCatalog {
		if !g.Re.MatchString(content.Text) {
			continue
		}
		found = append(found, g.Type)
		baseScore = max(baseScore, g.BaseScore)
	}

	if len(found) == 0 {
		return types.MetricCheck{
			Name:        NameGuaranteeParsing,
			Value:       0,
			RawValue:    types.TagRaw(GuaranteeNone),
			Description: "No guarantee or risk reversal found",
		}
	}

	bonus := min(float64((len(found)-1)*perExtraGuarantee), maxGuaranteeBonus)
	score := clampScore(min(baseScore+bonus, 100))

	return types.MetricCheck{
		Name:        NameGuaranteeParsing,
		Value:       score,
		RawValue:    types.TagRaw(strings.Join(found, ",")),
		Description: fmt.Sprintf("Found %d guarantee type(s): %s", len(found), strings.Join(found, ", ")),
	}
}
