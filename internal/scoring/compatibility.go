package scoring

import (
	"encoding/json"
	"math"
)

// Fixed trait weight tables. Each sums to 1.0 so a fully matching direction
// scores exactly 100.
var (
	physicalWeights = map[string]float64{
		"skin_type": 0.2,
		"body_type": 0.4,
		"height":    0.3,
		"face_type": 0.1,
	}

	mentalWeights = map[string]float64{
		"values":      0.4,
		"personality": 0.3,
		"interests":   0.3,
	}
)

// DirectionScores are one direction's physical/mental match percentages.
type DirectionScores struct {
	Physical float64 `json:"physical"`
	Mental   float64 `json:"mental"`
}

// CompatibilityBreakdown exposes both directions for UI transparency.
type CompatibilityBreakdown struct {
	User1ToUser2 DirectionScores `json:"user1_to_user2"`
	User2ToUser1 DirectionScores `json:"user2_to_user1"`
}

// CompatibilityResult is a computed bidirectional score.
type CompatibilityResult struct {
	Score     float64                `json:"score"`
	Breakdown CompatibilityBreakdown `json:"breakdown"`
}

// CompatibilityScorer combines per-attribute match scores into a symmetric
// pairwise compatibility score.
type CompatibilityScorer struct {
	memo *MatchMemo
}

// NewCompatibilityScorer creates a scorer backed by the given memo.
// A nil memo disables memoization.
func NewCompatibilityScorer(memo *MatchMemo) *CompatibilityScorer {
	return &CompatibilityScorer{memo: memo}
}

// Compute scores both directions and averages them, so the result is
// symmetric by construction: Compute(a, b) == Compute(b, a).
func (s *CompatibilityScorer) Compute(user1, user2 *Profile) *CompatibilityResult {
	physical12, mental12 := s.directionScore(user1, user2)
	physical21, mental21 := s.directionScore(user2, user1)

	direction12 := 0.5*physical12 + 0.5*mental12
	direction21 := 0.5*physical21 + 0.5*mental21

	score := round2(((direction12 + direction21) / 2) * 100)

	return &CompatibilityResult{
		Score: score,
		Breakdown: CompatibilityBreakdown{
			User1ToUser2: DirectionScores{
				Physical: math.Round(physical12 * 100),
				Mental:   math.Round(mental12 * 100),
			},
			User2ToUser1: DirectionScores{
				Physical: math.Round(physical21 * 100),
				Mental:   math.Round(mental21 * 100),
			},
		},
	}
}

// directionScore evaluates how well the candidate satisfies the requester.
func (s *CompatibilityScorer) directionScore(requester, candidate *Profile) (physical, mental float64) {
	reqs := decodeTraitDoc(requester.Requirements)
	quals := decodeTraitDoc(candidate.Qualities)

	physical = s.weightedScore(groupValue(reqs, "physical"), groupValue(quals, "physical"), physicalWeights)
	mental = s.weightedScore(groupValue(reqs, "mental"), groupValue(quals, "mental"), mentalWeights)
	return physical, mental
}

// weightedScore handles the two requirement document generations: the legacy
// flat list, and the weighted per-trait object.
func (s *CompatibilityScorer) weightedScore(reqs, quals interface{}, weights map[string]float64) float64 {
	if reqs == nil {
		// No requirements document at all: nothing to fail
		return 1.0
	}

	switch r := reqs.(type) {
	case []interface{}:
		return s.legacyListScore(r, quals)

	case map[string]interface{}:
		qualMap, _ := quals.(map[string]interface{})
		score := 0.0
		for trait, weight := range weights {
			var quality interface{}
			if qualMap != nil {
				quality = qualMap[trait]
			}
			score += weight * MatchScoreMemoized(s.memo, r[trait], quality)
		}
		return score

	default:
		// Neither list nor object; legacy degrade
		return 0.0
	}
}

// legacyListScore: fraction of required values present anywhere in the
// candidate's qualities, with list-valued entries flattened.
func (s *CompatibilityScorer) legacyListScore(reqs []interface{}, quals interface{}) float64 {
	if len(reqs) == 0 {
		return 1.0
	}

	qualValues := flattenQualities(quals)
	matched := 0
	for _, req := range reqs {
		for _, q := range qualValues {
			if valueEq(req, q) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(reqs))
}

func flattenQualities(quals interface{}) []interface{} {
	var out []interface{}
	switch q := quals.(type) {
	case map[string]interface{}:
		for _, v := range q {
			if list, ok := v.([]interface{}); ok {
				out = append(out, list...)
			} else if v != nil {
				out = append(out, v)
			}
		}
	case []interface{}:
		for _, v := range q {
			if list, ok := v.([]interface{}); ok {
				out = append(out, list...)
			} else if v != nil {
				out = append(out, v)
			}
		}
	}
	return out
}

// decodeTraitDoc unmarshals a qualities/requirements JSON document.
// Returns nil for absent or malformed documents.
func decodeTraitDoc(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc
}

func groupValue(doc map[string]interface{}, group string) interface{} {
	if doc == nil {
		return nil
	}
	return doc[group]
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
