package planner

import (
	"strings"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// Normalize produces the complete preference set for a user with every
// default applied: no nil slices, no unset flags, meal types and non-veg
// days in canonical order. It never fails; invalid stored values fall
// back to defaults.
func Normalize(u domain.User) domain.Preferences {
	prefs := domain.Preferences{
		IsVegetarian:       u.DietaryPreferences.IsVegetarian,
		NonVegDays:         canonicalDays(u.DietaryPreferences.NonVegDays),
		ShowCalories:       true,
		CuisinePreferences: cleanList(u.CuisinePreferences),
		DishPreferences: domain.DishPreferences{
			Breakfast:   cleanList(u.DishPreferences.Breakfast),
			LunchDinner: cleanList(u.DishPreferences.LunchDinner),
		},
		EnabledMealTypes: canonicalMealTypes(u.MealSettings.EnabledMealTypes),
		Ingredients:      cleanList(u.Ingredients),
	}

	if u.DietaryPreferences.ShowCalories != nil {
		prefs.ShowCalories = *u.DietaryPreferences.ShowCalories
	}

	return prefs
}

// canonicalMealTypes filters stored meal types against the canonical set
// and reorders them chronologically; stored order is discarded. An empty
// or entirely invalid list falls back to the full canonical set.
func canonicalMealTypes(stored []string) []string {
	if len(stored) == 0 {
		return append([]string(nil), domain.MealTypes...)
	}

	requested := make(map[string]struct{}, len(stored))
	for _, mealType := range stored {
		requested[strings.TrimSpace(mealType)] = struct{}{}
	}

	enabled := make([]string, 0, len(domain.MealTypes))

	for _, mealType := range domain.MealTypes {
		if _, ok := requested[mealType]; ok {
			enabled = append(enabled, mealType)
		}
	}

	if len(enabled) == 0 {
		return append([]string(nil), domain.MealTypes...)
	}

	return enabled
}

// canonicalDays filters weekday names against the canonical lowercase set
// and reorders them Monday first. Unknown names are dropped.
func canonicalDays(stored []string) []string {
	requested := make(map[string]struct{}, len(stored))
	for _, day := range stored {
		requested[strings.ToLower(strings.TrimSpace(day))] = struct{}{}
	}

	days := make([]string, 0, len(stored))

	for _, day := range domain.Weekdays {
		if _, ok := requested[day]; ok {
			days = append(days, day)
		}
	}

	return days
}

// cleanList copies a string list dropping blank entries. A nil input
// yields an empty, non-nil slice.
func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		cleaned = append(cleaned, v)
	}

	return cleaned
}
