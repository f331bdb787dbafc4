package planner

import (
	"context"
	"fmt"
	"regexp"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// emailPattern accepts one non-empty local part, a single @, and a dotted
// domain of letter/digit/hyphen labels. Deliverability is not checked;
// this only guards against storing-era junk (missing @, spaces, bare
// hostnames).
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		"[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$")

// ValidEmail reports whether email is syntactically usable.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// OptedOut reports whether the user explicitly disabled weekly meal
// plans. An unset flag counts as opted in.
func OptedOut(prefs domain.EmailPreferences) bool {
	return prefs.WeeklyMealPlans != nil && !*prefs.WeeklyMealPlans
}

// HasSignal reports whether enough data exists to produce a meaningful
// plan: at least one prior plan, chosen cuisines, or a complete pair of
// dish-preference lists.
func HasSignal(user *domain.User, historyCount int) bool {
	if historyCount > 0 {
		return true
	}

	if len(user.CuisinePreferences) > 0 {
		return true
	}

	return len(user.DishPreferences.Breakfast) > 0 && len(user.DishPreferences.LunchDinner) > 0
}

// EligibilityResult is the outcome of the ordered eligibility checks.
// SkipReason is empty when Eligible is true.
type EligibilityResult struct {
	Eligible   bool
	SkipReason string
}

func skipped(reason string) EligibilityResult {
	return EligibilityResult{SkipReason: reason}
}

func eligible() EligibilityResult {
	return EligibilityResult{Eligible: true}
}

// evaluate runs the eligibility checks for one user in fixed order,
// cheapest first, short-circuiting on the first failure. The returned
// history is the lookback window fetched for the signal check; the
// caller reuses it for summarization so each user costs one history
// query. Storage errors abort the evaluation and count as a per-user
// failure upstream.
func (p *Planner) evaluate(ctx context.Context, user *domain.User, weekStartDate string, lookback int) ([]domain.WeeklyMealPlan, EligibilityResult, error) {
	if !user.OnboardingCompleted {
		return nil, skipped(SkipOnboarding), nil
	}

	if !ValidEmail(user.Email) {
		return nil, skipped(SkipInvalidEmail), nil
	}

	if OptedOut(user.EmailPreferences) {
		return nil, skipped(SkipUnsubscribed), nil
	}

	exists, err := p.database.MealPlanExists(ctx, user.ID, weekStartDate)
	if err != nil {
		return nil, EligibilityResult{}, fmt.Errorf("check existing plan: %w", err)
	}

	if exists {
		return nil, skipped(SkipPlanExists), nil
	}

	history, err := p.database.RecentMealPlans(ctx, user.ID, weekStartDate, lookback)
	if err != nil {
		return nil, EligibilityResult{}, fmt.Errorf("fetch plan history: %w", err)
	}

	if !HasSignal(user, len(history)) {
		return nil, skipped(SkipNoSignal), nil
	}

	return history, eligible(), nil
}
