// internal/pairing/dto.go
package pairing

// DTOs for API responses

type PlanInfo struct {
	PlanID string     `json:"plan_id"`
	Limits PlanLimits `json:"limits"`
}

type Pagination struct {
	Page     int `json:"page"`
	Limit    int `json:"limit"`
	Returned int `json:"returned"`
}

// FeedResponse is one distributed pairing feed. Unlocked carries the
// candidates the plan lets the caller see; the rest are counted but hidden.
type FeedResponse struct {
	Unlocked    []*Candidate `json:"unlocked"`
	LockedCount int          `json:"locked_count"`
	PlanInfo    PlanInfo     `json:"plan_info"`
	Pagination  Pagination   `json:"pagination"`
}

// LimitsResponse reports the caller's quota state per action type.
type LimitsResponse struct {
	PlanInfo PlanInfo                    `json:"plan_info"`
	Usage    map[ActionType]*UsageStatus `json:"usage"`
}
