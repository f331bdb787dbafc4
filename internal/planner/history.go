package planner

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// SummarizeHistory reduces prior weekly plans to a compact text digest
// that biases generation away from repetition. Plans must arrive ordered
// by week start descending. Weeks with no dish in any enabled slot are
// dropped and at most the two most recent non-empty weeks are kept; when
// nothing usable remains the exact NoHistorySentinel string is returned.
func SummarizeHistory(plans []domain.WeeklyMealPlan, enabled []string) string {
	kept := make([]domain.WeeklyMealPlan, 0, historyKeepWeeks)

	for _, plan := range plans {
		if weekIsEmpty(plan.Meals, enabled) {
			continue
		}

		kept = append(kept, plan)

		if len(kept) == historyKeepWeeks {
			break
		}
	}

	if len(kept) == 0 {
		return NoHistorySentinel
	}

	var sb strings.Builder

	for i, plan := range kept {
		if i > 0 {
			sb.WriteString("\n")
		}

		sb.WriteString("Week of ")
		sb.WriteString(plan.WeekStartDate)
		sb.WriteString(":\n")
		writeWeekLines(&sb, plan.Meals, enabled)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// writeWeekLines emits one line per non-empty day: the day label, then
// the dish for each enabled meal type in canonical order. Blank slots on
// an otherwise non-empty day render the literal "empty" token so slot
// positions stay aligned with the enabled meal types.
func writeWeekLines(sb *strings.Builder, meals domain.WeekMeals, enabled []string) {
	for _, day := range domain.Weekdays {
		if dayIsEmpty(meals, day, enabled) {
			continue
		}

		sb.WriteString("- ")
		sb.WriteString(dayLabel(day))
		sb.WriteString(": ")

		for i, mealType := range enabled {
			if i > 0 {
				sb.WriteString(historyDishSeparator)
			}

			dish := strings.TrimSpace(meals.Dish(day, mealType))
			if dish == "" {
				dish = emptySlotToken
			}

			sb.WriteString(dish)
		}

		sb.WriteString("\n")
	}
}

func dayIsEmpty(meals domain.WeekMeals, day string, enabled []string) bool {
	for _, mealType := range enabled {
		if strings.TrimSpace(meals.Dish(day, mealType)) != "" {
			return false
		}
	}

	return true
}

func weekIsEmpty(meals domain.WeekMeals, enabled []string) bool {
	for _, day := range domain.Weekdays {
		if !dayIsEmpty(meals, day, enabled) {
			return false
		}
	}

	return true
}

// dayLabel renders a weekday key for prompt text ("monday" -> "Monday").
func dayLabel(day string) string {
	return cases.Title(language.English).String(day)
}
