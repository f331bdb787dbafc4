package planner

import (
	"strings"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/catalog"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// CuisineCatalog resolves cuisine selections to a flat allowed-dish list.
type CuisineCatalog interface {
	Union(names []string) []string
}

// Compile-time assertion that *catalog.Catalog implements CuisineCatalog.
var _ CuisineCatalog = (*catalog.Catalog)(nil)

// BuildPrompt assembles the generation prompt for one user. The output
// is deterministic: fixed section order, fixed wording, and a JSON
// schema literal covering exactly the enabled meal types, so identical
// inputs always produce an identical prompt.
func BuildPrompt(prefs domain.Preferences, historyText, weekStartDate string, cuisines CuisineCatalog) string {
	var sb strings.Builder

	sb.WriteString("You are a meal planning assistant. Create a weekly meal plan for the week starting ")
	sb.WriteString(weekStartDate)
	sb.WriteString(".\n\n")

	writeDietaryClause(&sb, prefs)
	writeDishClause(&sb, prefs, cuisines)
	writeIngredientsClause(&sb, prefs)

	sb.WriteString("Previous meal history:\n")
	sb.WriteString(historyText)
	sb.WriteString("\n\n")

	writeInstructions(&sb)

	sb.WriteString("Return the plan as a JSON object with exactly this structure:\n")
	sb.WriteString(planSchema(prefs.EnabledMealTypes))
	sb.WriteString("\n\nRespond with ONLY the JSON object. Do not include any other text, explanation, or formatting.")

	return sb.String()
}

// writeDietaryClause states the vegetarian constraint. A non-vegetarian
// user with no non-veg days gets the vegetarian clause: there is no day
// a meat dish would be allowed on.
func writeDietaryClause(sb *strings.Builder, prefs domain.Preferences) {
	if prefs.IsVegetarian || len(prefs.NonVegDays) == 0 {
		sb.WriteString("Dietary requirements: every dish must be strictly vegetarian. Do not include any meat, fish, or egg dishes.\n\n")

		return
	}

	labels := make([]string, len(prefs.NonVegDays))
	for i, day := range prefs.NonVegDays {
		labels[i] = dayLabel(day)
	}

	sb.WriteString("Dietary requirements: non-vegetarian dishes are allowed only on ")
	sb.WriteString(strings.Join(labels, ", "))
	sb.WriteString(". Every other day must have vegetarian dishes only.\n\n")
}

func writeDishClause(sb *strings.Builder, prefs domain.Preferences, cuisines CuisineCatalog) {
	allowed := allowedDishes(prefs, cuisines)
	if len(allowed) == 0 {
		return
	}

	sb.WriteString("Choose dishes only from this list: ")
	sb.WriteString(strings.Join(allowed, ", "))
	sb.WriteString(". Do not include any dish that is not on this list.\n\n")
}

// allowedDishes picks the closed-world dish set by priority: the user's
// own dish lists when both are present, else the catalog union for the
// user's cuisines. Empty means no restriction is stated.
func allowedDishes(prefs domain.Preferences, cuisines CuisineCatalog) []string {
	if len(prefs.DishPreferences.Breakfast) > 0 && len(prefs.DishPreferences.LunchDinner) > 0 {
		return unionDishes(prefs.DishPreferences.Breakfast, prefs.DishPreferences.LunchDinner)
	}

	if len(prefs.CuisinePreferences) > 0 && cuisines != nil {
		return cuisines.Union(prefs.CuisinePreferences)
	}

	return nil
}

// unionDishes merges dish lists preserving first-seen order.
func unionDishes(lists ...[]string) []string {
	seen := make(map[string]struct{})
	union := make([]string, 0)

	for _, list := range lists {
		for _, dish := range list {
			if _, ok := seen[dish]; ok {
				continue
			}

			seen[dish] = struct{}{}
			union = append(union, dish)
		}
	}

	return union
}

func writeIngredientsClause(sb *strings.Builder, prefs domain.Preferences) {
	if len(prefs.Ingredients) == 0 {
		return
	}

	sb.WriteString("Use each of these ingredients in at least one dish during the week: ")
	sb.WriteString(strings.Join(prefs.Ingredients, ", "))
	sb.WriteString(".\n\n")
}

func writeInstructions(sb *strings.Builder) {
	sb.WriteString("Instructions:\n")
	sb.WriteString("- Plan a varied week and avoid repeating a dish within the week unless the allowed dish list is too small.\n")
	sb.WriteString("- Avoid repeating dishes from the previous meal history.\n")
	sb.WriteString("- Prefer practical dishes that suit everyday home cooking.\n")
	sb.WriteString("- Respect every dietary requirement above.\n")
	sb.WriteString("- If an allowed dish list is given, use only dishes from that list.\n\n")
}

// planSchema renders the literal JSON shape the model must fill in:
// seven lowercase weekday keys, each holding the enabled meal types in
// canonical order with "meal name" placeholder values.
func planSchema(enabled []string) string {
	var sb strings.Builder

	sb.WriteString("{\n")

	for i, day := range domain.Weekdays {
		sb.WriteString("  \"")
		sb.WriteString(day)
		sb.WriteString("\": {\n")

		for j, mealType := range enabled {
			sb.WriteString("    \"")
			sb.WriteString(mealType)
			sb.WriteString("\": \"")
			sb.WriteString(schemaPlaceholder)
			sb.WriteString("\"")

			if j < len(enabled)-1 {
				sb.WriteString(",")
			}

			sb.WriteString("\n")
		}

		sb.WriteString("  }")

		if i < len(domain.Weekdays)-1 {
			sb.WriteString(",")
		}

		sb.WriteString("\n")
	}

	sb.WriteString("}")

	return sb.String()
}
