package planner

import (
	"context"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
	db "github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/storage"
)

// Repository defines the storage operations required by the Planner.
type Repository interface {
	// Settings operations
	GetSetting(ctx context.Context, key string, target interface{}) error

	// Advisory lock operations
	TryAcquireAdvisoryLock(ctx context.Context, lockID int64) (bool, error)
	ReleaseAdvisoryLock(ctx context.Context, lockID int64) error

	// User operations
	FetchOnboardedUsers(ctx context.Context, limit int) ([]domain.User, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)

	// Plan operations
	MealPlanExists(ctx context.Context, userID, weekStartDate string) (bool, error)
	RecentMealPlans(ctx context.Context, userID, beforeWeek string, limit int) ([]domain.WeeklyMealPlan, error)
	SaveMealPlan(ctx context.Context, plan *domain.WeeklyMealPlan) (bool, error)

	// Batch run operations
	RecordBatchRun(ctx context.Context, run *domain.BatchRun) error
}

// Compile-time assertion that *db.DB implements Repository.
var _ Repository = (*db.DB)(nil)
