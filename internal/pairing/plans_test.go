package pairing

import "testing"

func TestResolvePlanKnown(t *testing.T) {
	planID, limits := ResolvePlan("premium_monthly")
	if planID != "premium_monthly" {
		t.Fatalf("plan ID = %s, want premium_monthly", planID)
	}
	if limits.DailyPairingLimit != 10 || limits.DailySwipeLimit != Unlimited {
		t.Fatalf("unexpected premium limits: %+v", limits)
	}
	if !limits.CanSeeWhoLikedYou {
		t.Fatal("premium should see who liked them")
	}
}

func TestResolvePlanUnknownFallsBackToFree(t *testing.T) {
	for _, planID := range []string{"", "gold", "premium_weekly", "FREE"} {
		got, limits := ResolvePlan(planID)
		if got != FreePlanID {
			t.Fatalf("ResolvePlan(%q) = %s, want free", planID, got)
		}
		if limits.DailyPairingLimit != 1 || limits.ProfilesShownCount != 2 {
			t.Fatalf("free limits = %+v", limits)
		}
	}
}

func TestResolvePlanLegacyAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"basic", "basic_monthly"},
		{"standard", "standard_monthly"},
		{"premium", "premium_monthly"},
		{"plus", "standard_monthly"},
	}

	for _, tt := range tests {
		got, limits := ResolvePlan(tt.alias)
		if got != tt.want {
			t.Fatalf("ResolvePlan(%q) = %s, want %s", tt.alias, got, tt.want)
		}
		if limits != planLimits[tt.want] {
			t.Fatalf("alias %q limits differ from %s", tt.alias, tt.want)
		}
	}
}

func TestLimitForAction(t *testing.T) {
	_, limits := ResolvePlan("standard_monthly")

	tests := []struct {
		action ActionType
		want   int
	}{
		{ActionPairing, 5},
		{ActionSwipe, Unlimited},
		{ActionBlindDate, 3},
	}

	for _, tt := range tests {
		if got := limits.limitFor(tt.action); got != tt.want {
			t.Fatalf("limitFor(%s) = %d, want %d", tt.action, got, tt.want)
		}
	}
}
