package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// ErrUserNotFound is returned when a user row does not exist.
var ErrUserNotFound = errors.New("user not found")

// User is an alias for the domain type.
type User = domain.User

// FetchOnboardedUsers returns up to limit users who completed onboarding,
// ordered by email. This is the candidate pool for a batch run; per-user
// eligibility screening happens downstream.
func (db *DB) FetchOnboardedUsers(ctx context.Context, limit int) ([]domain.User, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id,
		       email,
		       onboarding_completed,
		       email_preferences,
		       dietary_preferences,
		       cuisine_preferences,
		       dish_preferences,
		       meal_settings,
		       ingredients,
		       created_at,
		       updated_at
		FROM users
		WHERE onboarding_completed
		ORDER BY email
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query onboarded users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

// UserByID returns a single user by ID, or ErrUserNotFound.
func (db *DB) UserByID(ctx context.Context, id string) (*domain.User, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT id,
		       email,
		       onboarding_completed,
		       email_preferences,
		       dietary_preferences,
		       cuisine_preferences,
		       dish_preferences,
		       meal_settings,
		       ingredients,
		       created_at,
		       updated_at
		FROM users
		WHERE id = $1
	`, toUUID(id))

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

// scanUser reads one user row. JSONB preference columns decode straight into
// the domain structs; the shapes written by the consumer apps and the ones
// defined here must stay in sync.
func scanUser(row pgx.Row) (domain.User, error) {
	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	var u domain.User

	if err := row.Scan(
		&id,
		&u.Email,
		&u.OnboardingCompleted,
		&u.EmailPreferences,
		&u.DietaryPreferences,
		&u.CuisinePreferences,
		&u.DishPreferences,
		&u.MealSettings,
		&u.Ingredients,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.User{}, err
	}

	u.ID = fromUUID(id)
	u.CreatedAt = fromTimestamptz(createdAt)
	u.UpdatedAt = fromTimestamptz(updatedAt)

	return u, nil
}
