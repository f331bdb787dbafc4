package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// WeeklyMealPlan is an alias for the domain type.
type WeeklyMealPlan = domain.WeeklyMealPlan

// MealPlanExists reports whether a plan row exists for the user and week.
func (db *DB) MealPlanExists(ctx context.Context, userID, weekStartDate string) (bool, error) {
	var exists bool

	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM meal_plans
			WHERE user_id = $1
			  AND week_start_date = $2::date
		)
	`, toUUID(userID), weekStartDate).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check meal plan exists: %w", err)
	}

	return exists, nil
}

// RecentMealPlans returns up to limit plans for the user strictly before the
// given week, most recent first. Weeks with no dishes recorded are returned
// as-is; callers decide what an empty week means.
func (db *DB) RecentMealPlans(ctx context.Context, userID, beforeWeek string, limit int) ([]domain.WeeklyMealPlan, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id,
		       user_id,
		       week_start_date,
		       meals,
		       ai_generated,
		       generated_at,
		       created_at,
		       updated_at
		FROM meal_plans
		WHERE user_id = $1
		  AND week_start_date < $2::date
		ORDER BY week_start_date DESC
		LIMIT $3
	`, toUUID(userID), beforeWeek, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent meal plans: %w", err)
	}
	defer rows.Close()

	plans := make([]domain.WeeklyMealPlan, 0, limit)

	for rows.Next() {
		var (
			id          pgtype.UUID
			uid         pgtype.UUID
			week        pgtype.Date
			mealsRaw    []byte
			generatedAt pgtype.Timestamptz
			createdAt   pgtype.Timestamptz
			updatedAt   pgtype.Timestamptz
		)

		var plan domain.WeeklyMealPlan

		if err := rows.Scan(
			&id,
			&uid,
			&week,
			&mealsRaw,
			&plan.AIGenerated,
			&generatedAt,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meal plan row: %w", err)
		}

		meals, err := decodeWeekMeals(mealsRaw)
		if err != nil {
			return nil, fmt.Errorf("decode meals for plan %s: %w", fromUUID(id), err)
		}

		plan.ID = fromUUID(id)
		plan.UserID = fromUUID(uid)
		plan.WeekStartDate = fromDate(week).Format(domain.WeekDateFormat)
		plan.Meals = meals
		plan.GeneratedAt = fromTimestamptz(generatedAt)
		plan.CreatedAt = fromTimestamptz(createdAt)
		plan.UpdatedAt = fromTimestamptz(updatedAt)

		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal plan rows: %w", err)
	}

	return plans, nil
}

// SaveMealPlan inserts a plan and reports whether a row was written. An
// existing row for the same (user, week) is left untouched, which makes
// batch retries safe.
func (db *DB) SaveMealPlan(ctx context.Context, plan *domain.WeeklyMealPlan) (bool, error) {
	payload, err := json.Marshal(plan.Meals)
	if err != nil {
		return false, fmt.Errorf("marshal meals: %w", err)
	}

	tag, err := db.Pool.Exec(ctx, `
		INSERT INTO meal_plans (user_id, week_start_date, meals, ai_generated, generated_at)
		VALUES ($1, $2::date, $3::jsonb, $4, $5)
		ON CONFLICT (user_id, week_start_date) DO NOTHING
	`, toUUID(plan.UserID), plan.WeekStartDate, string(payload), plan.AIGenerated, toTimestamptz(plan.GeneratedAt))
	if err != nil {
		return false, fmt.Errorf("insert meal plan: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// mealSlot accepts both encodings found in stored plans: early app versions
// wrote bare dish-name strings, later ones wrote {name, calories} objects.
type mealSlot domain.MealSlot

func (m *mealSlot) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &m.Name)
	}

	var slot struct {
		Name     string `json:"name"`
		Calories *int   `json:"calories"`
	}

	if err := json.Unmarshal(data, &slot); err != nil {
		return err
	}

	m.Name = slot.Name
	m.Calories = slot.Calories

	return nil
}

// decodeWeekMeals normalizes a meals JSONB payload into the domain shape.
// Downstream code never sees the legacy encodings.
func decodeWeekMeals(raw []byte) (domain.WeekMeals, error) {
	meals := domain.WeekMeals{}

	if len(raw) == 0 {
		return meals, nil
	}

	var decoded map[string]map[string]mealSlot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal meals: %w", err)
	}

	for day, slots := range decoded {
		daySlots := make(map[string]domain.MealSlot, len(slots))

		for mealType, slot := range slots {
			daySlots[mealType] = domain.MealSlot(slot)
		}

		meals[day] = daySlots
	}

	return meals, nil
}
