package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/errors"
)

// ExtractJSONObject returns the first top-level JSON object span in raw:
// from the first "{" through its matching "}". The scan is string-aware,
// so braces inside quoted values and escaped quotes do not unbalance it.
// Returns ErrNoJSONObject when no balanced object exists.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", errors.ErrNoJSONObject
	}

	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := start; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}

	return "", errors.ErrNoJSONObject
}

// ParsePlanResponse extracts the JSON plan from a raw model response and
// validates its shape: all seven weekday keys present, every enabled
// meal type holding a non-blank dish name. Extra meal-type keys within a
// day are kept; unknown top-level keys are ignored. The result carries
// names only, calories stay unset.
func ParsePlanResponse(raw string, enabled []string) (domain.WeekMeals, error) {
	span, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var days map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &days); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPlanJSON, err)
	}

	meals := make(domain.WeekMeals, len(domain.Weekdays))

	for _, day := range domain.Weekdays {
		dayMeals, err := decodeDay(days, day)
		if err != nil {
			return nil, err
		}

		if err := validateDaySlots(day, dayMeals, enabled); err != nil {
			return nil, err
		}

		meals[day] = dayMeals
	}

	return meals, nil
}

// decodeDay finds a weekday entry (tolerating capitalized keys) and
// decodes its meal map.
func decodeDay(days map[string]json.RawMessage, day string) (map[string]domain.MealSlot, error) {
	rawDay, ok := days[day]
	if !ok {
		for key, value := range days {
			if strings.EqualFold(key, day) {
				rawDay, ok = value, true

				break
			}
		}
	}

	if !ok {
		return nil, fmt.Errorf("%w: missing day %q", errors.ErrPlanShape, day)
	}

	var slots map[string]string
	if err := json.Unmarshal(rawDay, &slots); err != nil {
		return nil, fmt.Errorf("%w: day %q is not an object of meal names", errors.ErrPlanShape, day)
	}

	dayMeals := make(map[string]domain.MealSlot, len(slots))
	for mealType, name := range slots {
		dayMeals[mealType] = domain.MealSlot{Name: strings.TrimSpace(name)}
	}

	return dayMeals, nil
}

func validateDaySlots(day string, dayMeals map[string]domain.MealSlot, enabled []string) error {
	for _, mealType := range enabled {
		slot, ok := dayMeals[mealType]
		if !ok {
			return fmt.Errorf("%w: day %q missing meal type %q", errors.ErrPlanShape, day, mealType)
		}

		if slot.Name == "" {
			return fmt.Errorf("%w: day %q has a blank %q", errors.ErrPlanShape, day, mealType)
		}
	}

	return nil
}
