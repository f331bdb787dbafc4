// Package domain defines the core entities shared across the weekly
// food-planner pipeline: user profiles as stored, their normalized
// preference form, and the weekly meal plan the pipeline produces.
package domain

import "time"

// WeekDateFormat is the canonical layout for week-start date strings.
const WeekDateFormat = "2006-01-02"

// Canonical meal type keys in chronological order.
const (
	MealBreakfast    = "breakfast"
	MealMorningSnack = "morningSnack"
	MealLunch        = "lunch"
	MealEveningSnack = "eveningSnack"
	MealDinner       = "dinner"
)

// MealTypes is the canonical meal-type sequence. Per-user stored order is
// never trusted; everything downstream reorders to this.
var MealTypes = []string{
	MealBreakfast,
	MealMorningSnack,
	MealLunch,
	MealEveningSnack,
	MealDinner,
}

// Weekdays holds the seven lowercase weekday keys used in plan JSON and
// prompt schemas, Monday first.
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// IsMealType reports whether key is one of the canonical meal types.
func IsMealType(key string) bool {
	for _, mt := range MealTypes {
		if mt == key {
			return true
		}
	}

	return false
}

// User is a stored user profile. The pipeline reads it and never writes it.
type User struct {
	ID                  string
	Email               string
	OnboardingCompleted bool
	EmailPreferences    EmailPreferences
	DietaryPreferences  DietaryPreferences
	CuisinePreferences  []string
	DishPreferences     DishPreferences
	MealSettings        MealSettings
	Ingredients         []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EmailPreferences carries per-channel opt-out flags.
type EmailPreferences struct {
	// WeeklyMealPlans is nil when the user never touched the toggle.
	// Only an explicit false opts the user out.
	WeeklyMealPlans *bool `json:"weeklyMealPlans,omitempty"`
}

// DietaryPreferences holds the dietary side of a user's settings.
type DietaryPreferences struct {
	IsVegetarian bool     `json:"isVegetarian"`
	NonVegDays   []string `json:"nonVegDays,omitempty"`
	ShowCalories *bool    `json:"showCalories,omitempty"`
}

// DishPreferences lists the user's own dish choices. When both lists are
// non-empty they form a closed-world allowed set for generation.
type DishPreferences struct {
	Breakfast   []string `json:"breakfast,omitempty"`
	LunchDinner []string `json:"lunch_dinner,omitempty"`
}

// MealSettings holds which meal types the user plans for.
type MealSettings struct {
	EnabledMealTypes []string `json:"enabledMealTypes,omitempty"`
}

// Preferences is the normalized form of a user's settings with every
// default applied: no nil slices, no unset flags, meal types in canonical
// order. Produced by the preference normalizer.
type Preferences struct {
	IsVegetarian       bool
	NonVegDays         []string
	ShowCalories       bool
	CuisinePreferences []string
	DishPreferences    DishPreferences
	EnabledMealTypes   []string
	Ingredients        []string
}

// MealSlot is a single dish entry in a weekly plan. Calories is nil when
// unknown; AI-generated plans carry names only.
type MealSlot struct {
	Name     string `json:"name"`
	Calories *int   `json:"calories,omitempty"`
}

// WeekMeals maps weekday key to meal-type key to slot.
type WeekMeals map[string]map[string]MealSlot

// Dish returns the dish name for a day/meal-type pair, or "" when absent.
func (w WeekMeals) Dish(day, mealType string) string {
	if w == nil {
		return ""
	}

	return w[day][mealType].Name
}

// WeeklyMealPlan is the entity the pipeline persists. Exactly one plan
// exists per (UserID, WeekStartDate) pair.
type WeeklyMealPlan struct {
	ID            string
	UserID        string
	WeekStartDate string
	Meals         WeekMeals
	AIGenerated   bool
	GeneratedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BatchReport aggregates the terminal per-user outcomes of one batch
// invocation. Skips other than invalid-email are observable via metrics
// and logs but are not itemized here.
type BatchReport struct {
	Processed            int `json:"processed"`
	Success              int `json:"success"`
	Failed               int `json:"failed"`
	SkippedInvalidEmails int `json:"skippedInvalidEmails"`
}

// BatchRun is an audit record of one batch invocation.
type BatchRun struct {
	ID            string
	WeekStartDate string
	Trigger       string
	Report        BatchReport
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Batch trigger source constants.
const (
	TriggerCron      = "cron"
	TriggerScheduler = "scheduler"
	TriggerManual    = "manual"
)
