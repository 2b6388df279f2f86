// Package checks provides the deterministic metric checks run over parsed offer content.
package checks

import "regexp"

// Pattern is a named entry in a check's pattern catalog
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// GuaranteeType is a guarantee catalog entry with its base score
type GuaranteeType struct {
	Type      string
	BaseScore float64
	Re        *regexp.Regexp
}

// MechanismIndicator is a mechanism phrase and the points it contributes
type MechanismIndicator struct {
	Name   string
	Points float64
	Re     *regexp.Regexp
}

// ProofPatterns are the proof signals. Each pattern is counted on its own,
// so "3x faster, proven" scores two hits.
var ProofPatterns = []Pattern{
	{Name: "percentage", Re: regexp.MustCompile(`\d+(?:\.\d+)?%`)},
	{Name: "dollar-amount", Re: regexp.MustCompile(`(?i)\$\d[\d,]*(?:\.\d+)?(?:[kmb]\b)?`)},
	{Name: "multiplier", Re: regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?x\b`)},
	{Name: "case-study", Re: regexp.MustCompile(`(?i)\bcase stud(?:y|ies)\b`)},
	{Name: "testimonial", Re: regexp.MustCompile(`(?i)\btestimonials?\b`)},
	{Name: "verified", Re: regexp.MustCompile(`(?i)\bverified\b`)},
	{Name: "proven", Re: regexp.MustCompile(`(?i)\bproven\b`)},
	{Name: "research-shows", Re: regexp.MustCompile(`(?i)\b(?:research|studies|data) shows?\b`)},
	{Name: "trusted-by", Re: regexp.MustCompile(`(?i)\btrusted by\b`)},
	{Name: "customer-count", Re: regexp.MustCompile(`(?i)\b\d[\d,]*\+?\s+(?:customers|clients|users|teams|companies)\b`)},
}

// NumberPattern matches numeric tokens with an optional %, x, k, m or b suffix.
var NumberPattern = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)*(?:%|x\b|k\b|m\b|b\b)?`)

// CTAPatterns are call-to-action phrases, matched in body text and link text.
var CTAPatterns = []Pattern{
	{Name: "get-started", Re: regexp.MustCompile(`(?i)\bget started\b`)},
	{Name: "sign-up", Re: regexp.MustCompile(`(?i)\bsign[- ]?up\b`)},
	{Name: "start-trial", Re: regexp.MustCompile(`(?i)\bstart (?:your |a )?free trial\b`)},
	{Name: "try-free", Re: regexp.MustCompile(`(?i)\btry (?:it )?(?:for )?free\b`)},
	{Name: "book-demo", Re: regexp.MustCompile(`(?i)\bbook a (?:demo|call)\b`)},
	{Name: "request-demo", Re: regexp.MustCompile(`(?i)\brequest a demo\b`)},
	{Name: "schedule", Re: regexp.MustCompile(`(?i)\bschedule a (?:demo|call)\b`)},
	{Name: "learn-more", Re: regexp.MustCompile(`(?i)\blearn more\b`)},
	{Name: "buy-now", Re: regexp.MustCompile(`(?i)\bbuy now\b`)},
	{Name: "order-now", Re: regexp.MustCompile(`(?i)\border now\b`)},
	{Name: "join-now", Re: regexp.MustCompile(`(?i)\bjoin now\b`)},
	{Name: "subscribe", Re: regexp.MustCompile(`(?i)\bsubscribe\b`)},
	{Name: "contact", Re: regexp.MustCompile(`(?i)\bcontact (?:us|sales)\b`)},
	{Name: "download", Re: regexp.MustCompile(`(?i)\bdownload (?:now|free)\b`)},
	{Name: "claim", Re: regexp.MustCompile(`(?i)\bclaim your\b`)},
	{Name: "get-access", Re: regexp.MustCompile(`(?i)\bget (?:instant )?access\b`)},
}

// GuaranteeCatalog is ordered by descending base score, so the first matching
// entry is also the one with the highest base score.
var GuaranteeCatalog = []GuaranteeType{
	{Type: "money-back", BaseScore: 95, Re: regexp.MustCompile(`(?i)\bmoney[- ]back\b|\bfull refund\b`)},
	{Type: "satisfaction", BaseScore: 90, Re: regexp.MustCompile(`(?i)100%\s*satisfaction|\bsatisfaction guaranteed\b`)},
	{Type: "time-boxed", BaseScore: 85, Re: regexp.MustCompile(`(?i)\b\d+[- ]?(?:day|week|month|year)s?\s+(?:money[- ]back\s+)?(?:guarantee|refund|trial)\b`)},
	{Type: "no-questions-asked", BaseScore: 85, Re: regexp.MustCompile(`(?i)\bno questions asked\b`)},
	{Type: "risk-free", BaseScore: 80, Re: regexp.MustCompile(`(?i)\brisk[- ]free\b`)},
	{Type: "free-trial", BaseScore: 70, Re: regexp.MustCompile(`(?i)\bfree trial\b`)},
	{Type: "no-credit-card", BaseScore: 60, Re: regexp.MustCompile(`(?i)\bno credit card\b`)},
	{Type: "cancel-anytime", BaseScore: 55, Re: regexp.MustCompile(`(?i)\bcancel (?:at )?any ?time\b`)},
}

// TimeUnitPattern captures "in N <unit>" claims. Group 1 is the magnitude, group 2 the unit.
var TimeUnitPattern = regexp.MustCompile(`(?i)\b(?:in|within|under)\s+(?:just\s+|about\s+|only\s+|less than\s+)?(\d+)[\s-]*(seconds?|secs?|minutes?|mins?|hours?|hrs?|days?)\b`)

// ImmediacyPattern matches words that promise value without a concrete duration.
var ImmediacyPattern = regexp.MustCompile(`(?i)\b(?:instant(?:ly)?|immediate(?:ly)?|right now|quick(?:ly)?|fast(?:er|est)?)\b`)

// MechanismIndicators are the explanation phrases and their fixed point values.
var MechanismIndicators = []MechanismIndicator{
	{Name: "how-it-works", Points: 30, Re: regexp.MustCompile(`(?i)\bhow it works\b`)},
	{Name: "process", Points: 20, Re: regexp.MustCompile(`(?i)\bour (?:process|approach|method(?:ology)?)\b`)},
	{Name: "step-by-step", Points: 25, Re: regexp.MustCompile(`(?i)\bstep[- ]by[- ]step\b`)},
}

// StepMarkerPatterns match numbered or ordinal steps.
var StepMarkerPatterns = []Pattern{
	{Name: "step-n", Re: regexp.MustCompile(`(?i)\bstep\s*\d+\b`)},
	{Name: "numbered-item", Re: regexp.MustCompile(`(?i)\b\d+[.)]\s+[a-z]`)},
	{Name: "ordinal", Re: regexp.MustCompile(`(?i)\b(?:first|second|third|fourth|fifth|final)(?:ly)?,`)},
}

const (
	// stepMarkerThreshold is the number of step markers that earns stepMarkerPoints
	stepMarkerThreshold = 3
	stepMarkerPoints    = 25
	// indicatorBonusThreshold is the indicator count above which the bonus applies
	indicatorBonusThreshold = 5
	indicatorBonus          = 10
)
