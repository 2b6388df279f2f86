// Package types provides type definitions for structured data used throughout the offer-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RawKind identifies which variant a RawValue carries
type RawKind int

const (
	// RawCount is a numeric evidence count
	RawCount RawKind = iota
	// RawTag is a string tag such as "none" or "money-back"
	RawTag
	// RawFlag is a boolean presence flag
	RawFlag
)

// RawValue is the raw evidence behind a metric score. It holds exactly one of
// a count, a tag or a flag and encodes to JSON as the bare value.
type RawValue struct {
	kind  RawKind
	count float64
	tag   string
	flag  bool
}

// CountRaw wraps a numeric evidence count
func CountRaw(n int) RawValue {
	return RawValue{kind: RawCount, count: float64(n)}
}

// TagRaw wraps a string evidence tag
func TagRaw(tag string) RawValue {
	return RawValue{kind: RawTag, tag: tag}
}

// FlagRaw wraps a boolean evidence flag
func FlagRaw(flag bool) RawValue {
	return RawValue{kind: RawFlag, flag: flag}
}

// Kind returns the variant held by the value
func (r RawValue) Kind() RawKind { return r.kind }

// Count returns the numeric variant and whether it was set
func (r RawValue) Count() (float64, bool) { return r.count, r.kind == RawCount }

// Tag returns the string variant and whether it was set
func (r RawValue) Tag() (string, bool) { return r.tag, r.kind == RawTag }

// Flag returns the boolean variant and whether it was set
func (r RawValue) Flag() (bool, bool) { return r.flag, r.kind == RawFlag }

// String renders the value the way it appears in JSON, without quotes for tags.
func (r RawValue) String() string {
	switch r.kind {
	case RawTag:
		return r.tag
	case RawFlag:
		return strconv.FormatBool(r.flag)
	default:
		return strconv.FormatFloat(r.count, 'f', -1, 64)
	}
}

// MarshalJSON encodes the held variant as a bare JSON number, string or boolean.
func (r RawValue) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RawTag:
		return json.Marshal(r.tag)
	case RawFlag:
		return json.Marshal(r.flag)
	default:
		return json.Marshal(r.count)
	}
}

// UnmarshalJSON decodes a bare JSON number, string or boolean into the matching variant.
func (r *RawValue) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to decode raw value: %w", err)
	}
	switch val := v.(type) {
	case float64:
		*r = RawValue{kind: RawCount, count: val}
	case string:
		*r = TagRaw(val)
	case bool:
		*r = FlagRaw(val)
	case nil:
		*r = CountRaw(0)
	default:
		return fmt.Errorf("unsupported raw value: %s", string(data))
	}
	return nil
}

// MetricCheck is the output of a single metric check
type MetricCheck struct {
	Name        string   `json:"name"`
	Value       float64  `json:"value"` // Normalized score, 0-100
	RawValue    RawValue `json:"rawValue"`
	Description string   `json:"description"`
	// Confidence reflects evidence sufficiency (0-1). Advisory only, never used in scoring.
	Confidence *float64 `json:"confidence,omitempty"`
}

// Metrics holds the six named metric checks of an analysis
type Metrics struct {
	ProofDensity       MetricCheck `json:"proofDensity"`
	NumbersPer500Words MetricCheck `json:"numbersPer500Words"`
	CTADetection       MetricCheck `json:"ctaDetection"`
	GuaranteeParsing   MetricCheck `json:"guaranteeParsing"`
	TimeToFirstValue   MetricCheck `json:"timeToFirstValue"`
	MechanismPresence  MetricCheck `json:"mechanismPresence"`
}
