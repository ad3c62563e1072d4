package pairing

import (
	"github.com/lib/pq"
)

// Candidate is one feed candidate with its cached QCS. The exclusion set
// (swiped, blocked, ghosted) is applied before bucketing.
type Candidate struct {
	UserID     string         `json:"user_id" db:"user_id"`
	FullName   *string        `json:"full_name,omitempty" db:"full_name"`
	Bio        *string        `json:"bio,omitempty" db:"bio"`
	University *string        `json:"university,omitempty" db:"university"`
	Interests  pq.StringArray `json:"interests" db:"interests"`
	QCS        int            `json:"qcs" db:"qcs"`

	// Set per-request against the caller; candidates whose score cannot be
	// computed are dropped from the feed, not failed
	CompatibilityScore *float64 `json:"compatibility_score,omitempty" db:"-"`
}
