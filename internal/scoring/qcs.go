package scoring

import (
	"math"
	"strings"
	"time"
)

// Sub-score budgets. They sum to 100.
const (
	maxBioScore         = 20.0
	maxInterestsScore   = 15.0
	maxEducationScore   = 25.0
	maxAgeScore         = 20.0
	maxPhysicalScore    = 10.0
	maxPersonalityScore = 10.0

	optimalAge = 22
)

// QCSBreakdown holds each sub-score as a fraction of its own budget,
// persisted alongside the total for UI transparency.
type QCSBreakdown struct {
	Bio         float64 `json:"bio"`
	Interests   float64 `json:"interests"`
	Education   float64 `json:"education"`
	Age         float64 `json:"age"`
	Physical    float64 `json:"physical"`
	Personality float64 `json:"personality"`
}

// ComputeQCS calculates the deterministic profile quality score.
// Returns the rounded total in [0, 100] plus the per-category breakdown.
func ComputeQCS(p *Profile, now time.Time) (int, QCSBreakdown) {
	bio := bioScore(p.Bio)
	interests := interestsScore(len(p.Interests))
	education := educationScore(p.University)
	age := ageScore(p.DateOfBirth, now)
	physical := physicalScore(p)
	personality := personalityScore(p)

	total := math.Round(bio + interests + education + age + physical + personality)
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	breakdown := QCSBreakdown{
		Bio:         bio / maxBioScore,
		Interests:   interests / maxInterestsScore,
		Education:   education / maxEducationScore,
		Age:         age / maxAgeScore,
		Physical:    physical / maxPhysicalScore,
		Personality: personality / maxPersonalityScore,
	}

	return int(total), breakdown
}

// bioScore rewards longer bios, one point per five characters.
func bioScore(bio *string) float64 {
	if bio == nil {
		return 0
	}
	return math.Min(maxBioScore, float64(len(*bio))/5)
}

func interestsScore(count int) float64 {
	return math.Min(maxInterestsScore, float64(count)*2.5)
}

// educationScore tiers by institution: premier institutes, then any
// university or college, then any non-empty value, then the base.
func educationScore(university *string) float64 {
	if university == nil || strings.TrimSpace(*university) == "" {
		return 5
	}

	u := strings.ToLower(*university)
	if strings.Contains(u, "iit") || strings.Contains(u, "nit") || strings.Contains(u, "iiit") {
		return 25
	}
	if strings.Contains(u, "university") || strings.Contains(u, "college") {
		return 18
	}
	return 12
}

// ageScore peaks at the optimal age and loses a point per year of distance.
// Missing date of birth scores zero.
func ageScore(dob *time.Time, now time.Time) float64 {
	if dob == nil {
		return 0
	}

	age := ageInYears(*dob, now)
	return math.Max(0, maxAgeScore-math.Abs(float64(age-optimalAge)))
}

// ageInYears computes a calendar-accurate age: the year difference, minus one
// if the birthday has not yet occurred this year.
func ageInYears(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}

// physicalScore: base 4, plus 2 per physical attribute present.
func physicalScore(p *Profile) float64 {
	score := 4.0
	if p.Height != nil && *p.Height > 0 {
		score += 2
	}
	if hasValue(p.BodyType) {
		score += 2
	}
	if hasValue(p.SkinTone) {
		score += 2
	}
	return score
}

func personalityScore(p *Profile) float64 {
	score := 0.0
	if hasValue(p.PersonalityType) {
		score += 3
	}
	if hasValue(p.Values) {
		score += 3
	}
	if hasValue(p.Mindset) {
		score += 2
	}
	if hasValue(p.Lifestyle) {
		score += 2
	}
	return score
}

func hasValue(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
