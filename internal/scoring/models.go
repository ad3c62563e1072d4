package scoring

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Profile is the scoring core's read-only view of a user's dating profile.
// The profile-edit flows own the writes; this package only reads fields and
// keeps total_qcs in sync with the QCS record.
type Profile struct {
	UserID          string          `json:"user_id" db:"user_id"`
	FullName        *string         `json:"full_name,omitempty" db:"full_name"`
	DateOfBirth     *time.Time      `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Bio             *string         `json:"bio,omitempty" db:"bio"`
	Interests       pq.StringArray  `json:"interests" db:"interests"`
	University      *string         `json:"university,omitempty" db:"university"`
	Height          *float64        `json:"height,omitempty" db:"height"`
	BodyType        *string         `json:"body_type,omitempty" db:"body_type"`
	SkinTone        *string         `json:"skin_tone,omitempty" db:"skin_tone"`
	FaceType        *string         `json:"face_type,omitempty" db:"face_type"`
	PersonalityType *string         `json:"personality_type,omitempty" db:"personality_type"`
	Values          *string         `json:"values,omitempty" db:"values"`
	Mindset         *string         `json:"mindset,omitempty" db:"mindset"`
	Lifestyle       *string         `json:"lifestyle,omitempty" db:"lifestyle"`
	Qualities       json.RawMessage `json:"qualities,omitempty" db:"qualities"`
	Requirements    json.RawMessage `json:"requirements,omitempty" db:"requirements"`
	TotalQCS        *int            `json:"total_qcs,omitempty" db:"total_qcs"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// QCSRecord is the cached quality score for one user. total_score equals
// logic_score until a blend policy for ai_score is specified.
type QCSRecord struct {
	UserID      string          `json:"user_id" db:"user_id"`
	TotalScore  int             `json:"total_score" db:"total_score"`
	LogicScore  int             `json:"logic_score" db:"logic_score"`
	AIScore     *int            `json:"ai_score,omitempty" db:"ai_score"`
	PerCategory json.RawMessage `json:"per_category" db:"per_category"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// CompatibilityScore is a persisted pairwise score, keyed by the unordered
// user pair. user1_id < user2_id lexicographically by construction.
type CompatibilityScore struct {
	User1ID       string    `json:"user1_id" db:"user1_id"`
	User2ID       string    `json:"user2_id" db:"user2_id"`
	Score         float64   `json:"compatibility_score" db:"compatibility_score"`
	PhysicalScore float64   `json:"physical_score" db:"physical_score"`
	MentalScore   float64   `json:"mental_score" db:"mental_score"`
	CalculatedAt  time.Time `json:"calculated_at" db:"calculated_at"`
}

// CanonicalPair orders two user IDs so the smaller one comes first.
// Every pairwise row and cache key goes through this to avoid duplicates.
func CanonicalPair(user1ID, user2ID string) (string, string) {
	if user1ID > user2ID {
		return user2ID, user1ID
	}
	return user1ID, user2ID
}
