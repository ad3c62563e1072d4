package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrQCSNotFound     = errors.New("QCS record not found")
	ErrInvalidUserPair = errors.New("invalid user pair")
)

type Service interface {
	// Compatibility
	ComputeCompatibility(ctx context.Context, user1ID, user2ID string) (*CompatibilityResponse, error)

	// QCS
	GetQCS(ctx context.Context, userID string) (*QCSRecord, error)
	SyncUserQCS(ctx context.Context, userID string) (*QCSSyncDetail, error)
	SyncAllQCS(ctx context.Context) (*QCSSyncReport, error)
}

type service struct {
	repo     Repository
	scorer   *CompatibilityScorer
	aiScorer AIScorer // optional, may be nil
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService creates the scoring service. aiScorer may be nil when AI scoring
// is disabled.
func NewService(repo Repository, scorer *CompatibilityScorer, aiScorer AIScorer, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		scorer:   scorer,
		aiScorer: aiScorer,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (s *service) ComputeCompatibility(ctx context.Context, user1ID, user2ID string) (*CompatibilityResponse, error) {
	if user1ID == "" || user2ID == "" || user1ID == user2ID {
		return nil, ErrInvalidUserPair
	}

	user1ID, user2ID = CanonicalPair(user1ID, user2ID)

	// A stored score within the TTL is returned verbatim
	stored, err := s.repo.GetCompatibility(ctx, user1ID, user2ID)
	if err != nil {
		return nil, err
	}
	if stored != nil && s.now().Sub(stored.CalculatedAt) < s.cacheTTL {
		recordCompatibilityCacheHit()
		return &CompatibilityResponse{
			Score:  stored.Score,
			Cached: true,
		}, nil
	}

	profile1, err := s.repo.GetProfile(ctx, user1ID)
	if err != nil {
		return nil, err
	}
	profile2, err := s.repo.GetProfile(ctx, user2ID)
	if err != nil {
		return nil, err
	}

	result := s.scorer.Compute(profile1, profile2)

	record := &CompatibilityScore{
		User1ID: user1ID,
		User2ID: user2ID,
		Score:   result.Score,
		PhysicalScore: (result.Breakdown.User1ToUser2.Physical +
			result.Breakdown.User2ToUser1.Physical) / 2,
		MentalScore: (result.Breakdown.User1ToUser2.Mental +
			result.Breakdown.User2ToUser1.Mental) / 2,
	}
	if err := s.repo.UpsertCompatibility(ctx, record); err != nil {
		return nil, err
	}

	recordCompatibilityScore(result.Score)

	return &CompatibilityResponse{
		Score:     result.Score,
		Breakdown: &result.Breakdown,
	}, nil
}

func (s *service) GetQCS(ctx context.Context, userID string) (*QCSRecord, error) {
	return s.repo.GetQCSRecord(ctx, userID)
}

// SyncUserQCS recomputes one user's score and repairs any drift between the
// QCS record and the profile's cached total_qcs.
func (s *service) SyncUserQCS(ctx context.Context, userID string) (*QCSSyncDetail, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail := s.syncProfile(ctx, profile)
	if detail.Status != syncStatusSynced {
		return nil, errors.New(detail.Error)
	}
	return detail, nil
}

// SyncAllQCS recomputes every profile's score. A failure on one profile is
// recorded in the report and does not abort the batch.
func (s *service) SyncAllQCS(ctx context.Context) (*QCSSyncReport, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	report := &QCSSyncReport{
		SyncID:        uuid.NewString(),
		TotalProfiles: len(profiles),
	}

	for _, profile := range profiles {
		detail := s.syncProfile(ctx, profile)
		if detail.Status == syncStatusSynced {
			report.SuccessfullySynced++
			recordQCSSync("synced")
		} else {
			report.Failed++
			recordQCSSync("failed")
		}
		report.Details = append(report.Details, detail)
	}

	return report, nil
}

const (
	syncStatusSynced = "synced"
	syncStatusFailed = "failed"
)

func (s *service) syncProfile(ctx context.Context, profile *Profile) *QCSSyncDetail {
	detail := &QCSSyncDetail{UserID: profile.UserID}
	if profile.FullName != nil {
		detail.Name = *profile.FullName
	}
	if profile.TotalQCS != nil {
		detail.OldScore = *profile.TotalQCS
	}

	score, breakdown := ComputeQCS(profile, s.now())

	perCategory, err := json.Marshal(breakdown)
	if err != nil {
		detail.Status = syncStatusFailed
		detail.Error = err.Error()
		return detail
	}

	record := &QCSRecord{
		UserID:      profile.UserID,
		TotalScore:  score,
		LogicScore:  score,
		PerCategory: perCategory,
	}

	// The AI score is informational only; total_score stays the logic score
	if s.aiScorer != nil {
		if aiScore, err := s.aiScorer.ScoreProfile(ctx, profile); err != nil {
			log.Printf("scoring: AI score for %s unavailable: %v", profile.UserID, err)
		} else {
			record.AIScore = &aiScore
		}
	}

	if err := s.repo.UpsertQCSRecord(ctx, record); err != nil {
		detail.Status = syncStatusFailed
		detail.Error = err.Error()
		return detail
	}

	// Keep the profile's cached total in lockstep with the record
	if err := s.repo.UpdateProfileTotalQCS(ctx, profile.UserID, score); err != nil {
		detail.Status = syncStatusFailed
		detail.Error = err.Error()
		return detail
	}

	detail.NewScore = score
	detail.Status = syncStatusSynced
	return detail
}
