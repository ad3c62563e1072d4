// internal/scoring/dto.go
package scoring

// DTOs for API requests/responses

type CompatibilityRequestDTO struct {
	User1ID string `json:"user1_id" validate:"required"`
	User2ID string `json:"user2_id" validate:"required,nefield=User1ID"`
}

type QCSSyncRequestDTO struct {
	Action string `json:"action" validate:"required,oneof=sync_all"`
}

// CompatibilityResponse carries a computed or cached pairwise score.
// Breakdown is omitted on cache hits; the stored score is returned verbatim.
type CompatibilityResponse struct {
	Score     float64                 `json:"score"`
	Breakdown *CompatibilityBreakdown `json:"breakdown,omitempty"`
	Cached    bool                    `json:"cached,omitempty"`
}

type QCSSyncDetail struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name,omitempty"`
	OldScore int    `json:"old_score"`
	NewScore int    `json:"new_score"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type QCSSyncReport struct {
	SyncID             string           `json:"sync_id"`
	TotalProfiles      int              `json:"total_profiles"`
	SuccessfullySynced int              `json:"successfully_synced"`
	Failed             int              `json:"failed"`
	Details            []*QCSSyncDetail `json:"details"`
}
