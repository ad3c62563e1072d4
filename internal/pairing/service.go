package pairing

import (
	"context"
	"errors"
	"log"

	"github.com/lumore-app/lumore-backend/internal/scoring"
)

var (
	ErrDailyLimitReached  = errors.New("daily pairing limit reached")
	ErrUsagePersistFailed = errors.New("failed to record usage")
)

type Service interface {
	GetFeed(ctx context.Context, userID string, page, limit int) (*FeedResponse, error)
	GetLimits(ctx context.Context, userID string) (*LimitsResponse, error)
}

type service struct {
	repo       Repository
	scoring    scoring.Service
	limiter    *DailyUsageLimiter
	targetSize int
}

func NewService(repo Repository, scoringService scoring.Service, limiter *DailyUsageLimiter, targetSize int) Service {
	return &service{
		repo:       repo,
		scoring:    scoringService,
		limiter:    limiter,
		targetSize: targetSize,
	}
}

const (
	defaultPoolLimit = 100
	maxPoolLimit     = 200
)

func (s *service) GetFeed(ctx context.Context, userID string, page, limit int) (*FeedResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPoolLimit
	}
	if limit > maxPoolLimit {
		limit = maxPoolLimit
	}

	planID, err := s.repo.GetUserPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	planID, limits := ResolvePlan(planID)

	status, err := s.limiter.CanConsume(ctx, userID, planID, ActionPairing)
	if err != nil {
		return nil, err
	}
	if !status.CanRequest {
		recordFeedRequest("limited")
		return nil, ErrDailyLimitReached
	}

	excluded, err := s.repo.GetExcludedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.GetCandidates(ctx, userID, excluded, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	distributed := Distribute(pool, s.targetSize)

	// Enrich each candidate with the pairwise score. A scoring failure drops
	// that candidate instead of failing the whole feed.
	feed := make([]*Candidate, 0, len(distributed))
	for _, candidate := range distributed {
		comp, err := s.scoring.ComputeCompatibility(ctx, userID, candidate.UserID)
		if err != nil {
			log.Printf("pairing: dropping candidate %s from feed for %s: %v", candidate.UserID, userID, err)
			continue
		}
		score := comp.Score
		candidate.CompatibilityScore = &score
		feed = append(feed, candidate)
	}

	// Count the request only once the feed is built
	if !s.limiter.Consume(ctx, userID, ActionPairing) {
		return nil, ErrUsagePersistFailed
	}

	unlockedCount := limits.ProfilesShownCount
	if unlockedCount > len(feed) {
		unlockedCount = len(feed)
	}

	recordFeedRequest("ok")
	recordFeedSize(len(feed))

	return &FeedResponse{
		Unlocked:    feed[:unlockedCount],
		LockedCount: len(feed) - unlockedCount,
		PlanInfo: PlanInfo{
			PlanID: planID,
			Limits: limits,
		},
		Pagination: Pagination{
			Page:     page,
			Limit:    limit,
			Returned: len(feed),
		},
	}, nil
}

func (s *service) GetLimits(ctx context.Context, userID string) (*LimitsResponse, error) {
	planID, err := s.repo.GetUserPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	planID, limits := ResolvePlan(planID)

	usage := make(map[ActionType]*UsageStatus)
	for _, action := range []ActionType{ActionPairing, ActionSwipe, ActionBlindDate} {
		status, err := s.limiter.CanConsume(ctx, userID, planID, action)
		if err != nil {
			return nil, err
		}
		usage[action] = status
	}

	return &LimitsResponse{
		PlanInfo: PlanInfo{
			PlanID: planID,
			Limits: limits,
		},
		Usage: usage,
	}, nil
}
