package scoring

import (
	"log"
	"reflect"
	"strings"
)

// RequirementKind discriminates the shapes a stored requirement can take.
// Decoding into an explicit kind keeps malformed documents visible instead of
// silently falling through a type switch.
type RequirementKind int

const (
	RequirementNone RequirementKind = iota // null/absent: no preference
	RequirementList
	RequirementRange
	RequirementScalar
	RequirementUnknown // object without min/max; legacy bad data
)

// Requirement is one decoded requirement value.
type Requirement struct {
	Kind   RequirementKind
	List   []interface{}
	Min    float64
	Max    float64
	Scalar interface{}
}

// ParseRequirement classifies a decoded JSON value into a Requirement.
func ParseRequirement(raw interface{}) Requirement {
	if raw == nil {
		return Requirement{Kind: RequirementNone}
	}

	switch v := raw.(type) {
	case []interface{}:
		return Requirement{Kind: RequirementList, List: v}
	case map[string]interface{}:
		min, minOK := asNumber(v["min"])
		max, maxOK := asNumber(v["max"])
		if minOK && maxOK {
			return Requirement{Kind: RequirementRange, Min: min, Max: max}
		}
		return Requirement{Kind: RequirementUnknown}
	default:
		return Requirement{Kind: RequirementScalar, Scalar: raw}
	}
}

// MatchScore evaluates whether quality satisfies the requirement.
// The result is binary: 1.0 satisfied, 0.0 not.
func (r Requirement) MatchScore(quality interface{}) float64 {
	switch r.Kind {
	case RequirementNone:
		// No preference is always satisfied
		return 1.0

	case RequirementList:
		if listHasWildcard(r.List) {
			return 1.0
		}
		if quality == nil {
			return 0.0
		}
		if qualityList, ok := quality.([]interface{}); ok {
			for _, req := range r.List {
				for _, q := range qualityList {
					if valueEq(req, q) {
						return 1.0
					}
				}
			}
			return 0.0
		}
		for _, req := range r.List {
			if valueEq(req, quality) {
				return 1.0
			}
		}
		return 0.0

	case RequirementRange:
		q, ok := asNumber(quality)
		if !ok {
			return 0.0
		}
		if q >= r.Min && q <= r.Max {
			return 1.0
		}
		return 0.0

	case RequirementScalar:
		if valueEq(r.Scalar, quality) {
			return 1.0
		}
		return 0.0

	default:
		// Legacy behavior: unrecognized shapes score zero instead of erroring,
		// but loudly enough to show up in logs
		log.Printf("scoring: unknown requirement shape %T, scoring 0.0", r.Scalar)
		return 0.0
	}
}

// MatchScore is the convenience form over raw decoded JSON values.
func MatchScore(requirement, quality interface{}) float64 {
	return ParseRequirement(requirement).MatchScore(quality)
}

// wildcardReplacer strips the separators people type into "any"/"all" tokens
var wildcardReplacer = strings.NewReplacer("_", "", "-", "", " ", "")

func listHasWildcard(list []interface{}) bool {
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			continue
		}
		token := wildcardReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
		if token == "any" || token == "all" {
			return true
		}
	}
	return false
}

// asNumber accepts the numeric types a requirement can arrive as: float64 from
// JSON decoding, plus int/int64 from in-process callers.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// valueEq compares two decoded JSON values. Exact match, no normalization;
// numbers compare by value across int/float representations.
func valueEq(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if na, ok := asNumber(a); ok {
		if nb, ok := asNumber(b); ok {
			return na == nb
		}
		return false
	}
	ta := reflect.TypeOf(a)
	tb := reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
