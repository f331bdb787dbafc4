package planner

import (
	"reflect"
	"testing"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestNormalizeDefaults(t *testing.T) {
	prefs := Normalize(domain.User{})

	if !prefs.ShowCalories {
		t.Error("ShowCalories should default to true")
	}

	if prefs.CuisinePreferences == nil || len(prefs.CuisinePreferences) != 0 {
		t.Errorf("CuisinePreferences = %v, want empty non-nil slice", prefs.CuisinePreferences)
	}

	if prefs.DishPreferences.Breakfast == nil || prefs.DishPreferences.LunchDinner == nil {
		t.Error("DishPreferences lists should be empty non-nil slices")
	}

	if !reflect.DeepEqual(prefs.EnabledMealTypes, domain.MealTypes) {
		t.Errorf("EnabledMealTypes = %v, want canonical set %v", prefs.EnabledMealTypes, domain.MealTypes)
	}

	if prefs.Ingredients == nil || len(prefs.Ingredients) != 0 {
		t.Errorf("Ingredients = %v, want empty non-nil slice", prefs.Ingredients)
	}
}

func TestNormalizeShowCalories(t *testing.T) {
	tests := []struct {
		name   string
		stored *bool
		want   bool
	}{
		{name: "unset defaults to true", stored: nil, want: true},
		{name: "explicit true", stored: boolPtr(true), want: true},
		{name: "explicit false", stored: boolPtr(false), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := domain.User{}
			u.DietaryPreferences.ShowCalories = tt.stored

			if got := Normalize(u).ShowCalories; got != tt.want {
				t.Errorf("ShowCalories = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeMealTypes(t *testing.T) {
	tests := []struct {
		name   string
		stored []string
		want   []string
	}{
		{
			name:   "empty falls back to canonical set",
			stored: nil,
			want:   domain.MealTypes,
		},
		{
			name:   "stored order is discarded",
			stored: []string{"dinner", "breakfast", "lunch"},
			want:   []string{"breakfast", "lunch", "dinner"},
		},
		{
			name:   "subset keeps canonical order",
			stored: []string{"eveningSnack", "morningSnack"},
			want:   []string{"morningSnack", "eveningSnack"},
		},
		{
			name:   "unknown values dropped",
			stored: []string{"brunch", "lunch", "supper"},
			want:   []string{"lunch"},
		},
		{
			name:   "entirely invalid falls back to canonical set",
			stored: []string{"brunch", "supper"},
			want:   domain.MealTypes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := domain.User{}
			u.MealSettings.EnabledMealTypes = tt.stored

			if got := Normalize(u).EnabledMealTypes; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EnabledMealTypes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeNonVegDays(t *testing.T) {
	u := domain.User{}
	u.DietaryPreferences.NonVegDays = []string{"Sunday", "wednesday", "MONDAY", "someday"}

	got := Normalize(u).NonVegDays
	want := []string{"monday", "wednesday", "sunday"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("NonVegDays = %v, want %v (Monday-first, unknown dropped)", got, want)
	}
}

func TestNormalizeDropsBlankEntries(t *testing.T) {
	u := domain.User{
		CuisinePreferences: []string{" North Indian ", "", "  "},
		Ingredients:        []string{"paneer", " "},
	}
	u.DishPreferences.Breakfast = []string{"Poha", ""}

	prefs := Normalize(u)

	if want := []string{"North Indian"}; !reflect.DeepEqual(prefs.CuisinePreferences, want) {
		t.Errorf("CuisinePreferences = %v, want %v", prefs.CuisinePreferences, want)
	}

	if want := []string{"paneer"}; !reflect.DeepEqual(prefs.Ingredients, want) {
		t.Errorf("Ingredients = %v, want %v", prefs.Ingredients, want)
	}

	if want := []string{"Poha"}; !reflect.DeepEqual(prefs.DishPreferences.Breakfast, want) {
		t.Errorf("DishPreferences.Breakfast = %v, want %v", prefs.DishPreferences.Breakfast, want)
	}
}
