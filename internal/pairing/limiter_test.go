package pairing

import (
	"context"
	"errors"
	"testing"
	"time"
)

// failingStore rejects all writes.
type failingStore struct{}

func (failingStore) Incr(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, errors.New("store unavailable")
}

func (failingStore) Get(_ context.Context, _ string) (int64, error) {
	return 0, errors.New("store unavailable")
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLimiterFreePlanExhaustion(t *testing.T) {
	ctx := context.Background()
	limiter := NewDailyUsageLimiter(NewMemoryUsageStore())
	limiter.now = fixedClock(time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC))

	status, err := limiter.CanConsume(ctx, "u1", FreePlanID, ActionPairing)
	if err != nil {
		t.Fatalf("CanConsume: %v", err)
	}
	if !status.CanRequest || status.Remaining != 1 || status.UsedToday != 0 {
		t.Fatalf("fresh status = %+v, want can_request with 1 remaining", status)
	}

	if !limiter.Consume(ctx, "u1", ActionPairing) {
		t.Fatal("Consume failed against memory store")
	}

	status, err = limiter.CanConsume(ctx, "u1", FreePlanID, ActionPairing)
	if err != nil {
		t.Fatalf("CanConsume after consume: %v", err)
	}
	if status.CanRequest {
		t.Fatal("free plan allowed a second pairing request")
	}
	if status.UsedToday != 1 || status.Remaining != 0 {
		t.Fatalf("exhausted status = %+v, want used 1 remaining 0", status)
	}
}

func TestLimiterUnlimitedPlan(t *testing.T) {
	ctx := context.Background()
	limiter := NewDailyUsageLimiter(NewMemoryUsageStore())

	for i := 0; i < 100; i++ {
		if !limiter.Consume(ctx, "u1", ActionSwipe) {
			t.Fatal("Consume failed")
		}
	}

	status, err := limiter.CanConsume(ctx, "u1", "premium_monthly", ActionSwipe)
	if err != nil {
		t.Fatalf("CanConsume: %v", err)
	}
	if !status.CanRequest {
		t.Fatal("unlimited plan blocked")
	}
	if status.DailyLimit != Unlimited || status.Remaining != Unlimited {
		t.Fatalf("unlimited status = %+v, want -1 sentinels", status)
	}
	if status.UsedToday != 100 {
		t.Fatalf("used today = %d, want 100", status.UsedToday)
	}
}

func TestLimiterDateRollover(t *testing.T) {
	ctx := context.Background()
	limiter := NewDailyUsageLimiter(NewMemoryUsageStore())
	limiter.now = fixedClock(time.Date(2026, time.June, 15, 23, 50, 0, 0, time.UTC))

	if !limiter.Consume(ctx, "u1", ActionPairing) {
		t.Fatal("Consume failed")
	}
	status, _ := limiter.CanConsume(ctx, "u1", FreePlanID, ActionPairing)
	if status.CanRequest {
		t.Fatal("expected free plan exhausted before midnight")
	}

	// Past midnight the date in the key changes and the counter resets
	limiter.now = fixedClock(time.Date(2026, time.June, 16, 0, 10, 0, 0, time.UTC))

	status, err := limiter.CanConsume(ctx, "u1", FreePlanID, ActionPairing)
	if err != nil {
		t.Fatalf("CanConsume after rollover: %v", err)
	}
	if !status.CanRequest || status.UsedToday != 0 {
		t.Fatalf("post-rollover status = %+v, want fresh quota", status)
	}
}

func TestLimiterKeysScopedPerUserAndAction(t *testing.T) {
	ctx := context.Background()
	limiter := NewDailyUsageLimiter(NewMemoryUsageStore())

	if !limiter.Consume(ctx, "u1", ActionPairing) {
		t.Fatal("Consume failed")
	}

	// Another user and another action are unaffected
	status, _ := limiter.CanConsume(ctx, "u2", FreePlanID, ActionPairing)
	if status.UsedToday != 0 {
		t.Fatalf("u2 used today = %d, want 0", status.UsedToday)
	}
	status, _ = limiter.CanConsume(ctx, "u1", FreePlanID, ActionBlindDate)
	if status.UsedToday != 0 {
		t.Fatalf("blind date used today = %d, want 0", status.UsedToday)
	}
}

func TestLimiterConsumePersistFailure(t *testing.T) {
	limiter := NewDailyUsageLimiter(failingStore{})

	if limiter.Consume(context.Background(), "u1", ActionPairing) {
		t.Fatal("Consume reported success with a failing store")
	}
}

func TestUsageKeyFormat(t *testing.T) {
	limiter := NewDailyUsageLimiter(NewMemoryUsageStore())
	limiter.now = fixedClock(time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC))

	got := limiter.usageKey("user-42", ActionSwipe)
	want := "usage:swipes:user-42:2026-06-15"
	if got != want {
		t.Fatalf("usageKey = %s, want %s", got, want)
	}
}
