package pairing

import "log"

// Unlimited is the sentinel for plans without a daily cap.
const Unlimited = -1

// PlanLimits are the static per-plan quotas. Immutable at runtime; only the
// user-to-plan mapping changes.
type PlanLimits struct {
	DailyPairingLimit   int  `json:"daily_pairing_limit"`
	DailySwipeLimit     int  `json:"daily_swipe_limit"`
	DailyBlindDateLimit int  `json:"daily_blind_date_limit"`
	ProfilesShownCount  int  `json:"profiles_shown_count"`
	CanSeeWhoLikedYou   bool `json:"can_see_who_liked_you"`
}

// FreePlanID is the fallback for unknown or missing plans.
const FreePlanID = "free"

var planLimits = map[string]PlanLimits{
	FreePlanID: {
		DailyPairingLimit:   1,
		DailySwipeLimit:     20,
		DailyBlindDateLimit: 1,
		ProfilesShownCount:  2,
		CanSeeWhoLikedYou:   false,
	},
	"basic_monthly": {
		DailyPairingLimit:   3,
		DailySwipeLimit:     50,
		DailyBlindDateLimit: 2,
		ProfilesShownCount:  5,
		CanSeeWhoLikedYou:   false,
	},
	"basic_yearly": {
		DailyPairingLimit:   3,
		DailySwipeLimit:     50,
		DailyBlindDateLimit: 2,
		ProfilesShownCount:  5,
		CanSeeWhoLikedYou:   false,
	},
	"standard_monthly": {
		DailyPairingLimit:   5,
		DailySwipeLimit:     Unlimited,
		DailyBlindDateLimit: 3,
		ProfilesShownCount:  7,
		CanSeeWhoLikedYou:   true,
	},
	"standard_yearly": {
		DailyPairingLimit:   5,
		DailySwipeLimit:     Unlimited,
		DailyBlindDateLimit: 3,
		ProfilesShownCount:  7,
		CanSeeWhoLikedYou:   true,
	},
	"premium_monthly": {
		DailyPairingLimit:   10,
		DailySwipeLimit:     Unlimited,
		DailyBlindDateLimit: 5,
		ProfilesShownCount:  10,
		CanSeeWhoLikedYou:   true,
	},
	"premium_yearly": {
		DailyPairingLimit:   10,
		DailySwipeLimit:     Unlimited,
		DailyBlindDateLimit: 5,
		ProfilesShownCount:  10,
		CanSeeWhoLikedYou:   true,
	},
}

// Aliases kept for subscriptions created before plans got billing intervals.
var legacyPlanAliases = map[string]string{
	"basic":    "basic_monthly",
	"standard": "standard_monthly",
	"premium":  "premium_monthly",
	"plus":     "standard_monthly",
}

// ResolvePlan maps a plan ID to its limits. Unknown IDs fall back to the free
// tier with a logged warning, never to unlimited.
func ResolvePlan(planID string) (string, PlanLimits) {
	if canonical, ok := legacyPlanAliases[planID]; ok {
		planID = canonical
	}

	limits, ok := planLimits[planID]
	if !ok {
		if planID != "" {
			log.Printf("pairing: unknown plan %q, falling back to free tier", planID)
		}
		return FreePlanID, planLimits[FreePlanID]
	}
	return planID, limits
}
