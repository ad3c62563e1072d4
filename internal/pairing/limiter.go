package pairing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ActionType names the per-day counters a plan caps.
type ActionType string

const (
	ActionPairing   ActionType = "pairing_requests"
	ActionSwipe     ActionType = "swipes"
	ActionBlindDate ActionType = "blind_dates"
)

// usageKeyTTL keeps counters around past the day boundary so late readers
// still see them; the date in the key is what actually scopes a day.
const usageKeyTTL = 48 * time.Hour

// UsageStore persists per-key daily counters. Incr must be atomic.
type UsageStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

// RedisUsageStore backs the limiter with atomic Redis INCR.
type RedisUsageStore struct {
	client *redis.Client
}

func NewRedisUsageStore(client *redis.Client) *RedisUsageStore {
	return &RedisUsageStore{client: client}
}

func (s *RedisUsageStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage %s: %w", key, err)
	}
	if count == 1 {
		// First action of the day creates the key
		s.client.Expire(ctx, key, ttl)
	}
	return count, nil
}

func (s *RedisUsageStore) Get(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read usage %s: %w", key, err)
	}
	return count, nil
}

// MemoryUsageStore is an in-process store for tests and local development.
type MemoryUsageStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemoryUsageStore() *MemoryUsageStore {
	return &MemoryUsageStore{counters: make(map[string]int64)}
}

func (s *MemoryUsageStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

func (s *MemoryUsageStore) Get(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key], nil
}

// UsageStatus is the result of a limit check.
type UsageStatus struct {
	CanRequest bool `json:"can_request"`
	UsedToday  int  `json:"used_today"`
	DailyLimit int  `json:"daily_limit"`
	Remaining  int  `json:"remaining"`
}

// DailyUsageLimiter tracks per-user, per-day action counts against the
// caller's plan quotas. The day key uses the process's local calendar date;
// counters reset implicitly when the date rolls over.
type DailyUsageLimiter struct {
	store UsageStore
	now   func() time.Time
}

func NewDailyUsageLimiter(store UsageStore) *DailyUsageLimiter {
	return &DailyUsageLimiter{
		store: store,
		now:   time.Now,
	}
}

// CanConsume reports whether the user has quota left for the action today.
func (l *DailyUsageLimiter) CanConsume(ctx context.Context, userID, planID string, action ActionType) (*UsageStatus, error) {
	_, limits := ResolvePlan(planID)
	limit := limits.limitFor(action)

	used, err := l.store.Get(ctx, l.usageKey(userID, action))
	if err != nil {
		return nil, err
	}

	if limit == Unlimited {
		return &UsageStatus{
			CanRequest: true,
			UsedToday:  int(used),
			DailyLimit: Unlimited,
			Remaining:  Unlimited,
		}, nil
	}

	remaining := limit - int(used)
	if remaining < 0 {
		remaining = 0
	}

	return &UsageStatus{
		CanRequest: int(used) < limit,
		UsedToday:  int(used),
		DailyLimit: limit,
		Remaining:  remaining,
	}, nil
}

// Consume records one action. Returns false when the count could not be
// persisted; the caller must not proceed in that case.
func (l *DailyUsageLimiter) Consume(ctx context.Context, userID string, action ActionType) bool {
	if _, err := l.store.Incr(ctx, l.usageKey(userID, action), usageKeyTTL); err != nil {
		recordUsagePersistFailure()
		return false
	}
	return true
}

func (l *DailyUsageLimiter) usageKey(userID string, action ActionType) string {
	date := l.now().Format("2006-01-02")
	return fmt.Sprintf("usage:%s:%s:%s", action, userID, date)
}

func (p PlanLimits) limitFor(action ActionType) int {
	switch action {
	case ActionSwipe:
		return p.DailySwipeLimit
	case ActionBlindDate:
		return p.DailyBlindDateLimit
	default:
		return p.DailyPairingLimit
	}
}
