package ports

import (
	"context"
	"time"

	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
)

type ActivityRepository interface {
	List(ctx context.Context, categoryID *uint64) ([]domain.Activity, error)
	Get(ctx context.Context, id uint64) (domain.Activity, error)
	Create(ctx context.Context, input domain.CreateActivityInput) (domain.Activity, error)
	Update(ctx context.Context, id uint64, input domain.UpdateActivityInput) (domain.Activity, error)
	Delete(ctx context.Context, id uint64) error
}

type CategoryRepository interface {
	Get(ctx context.Context, id uint64) (domain.Category, error)
}

// ExecutionRepository is the persistence gateway for the execution lifecycle.
// StartExecution and CompleteExecution run their checks and writes inside a
// single transaction so that schedule and history records move together.
type ExecutionRepository interface {
	// CountStartedOn returns how many executions of the category's activities
	// have a history record starting on the given day.
	CountStartedOn(ctx context.Context, categoryID uint64, day time.Time) (int, error)
	// CountsByCategory returns today's started-execution count per category.
	CountsByCategory(ctx context.Context, day time.Time) (map[uint64]int, error)
	// CompletedActivityIDs returns the IDs of activities with a history record
	// ending on the given day.
	CompletedActivityIDs(ctx context.Context, day time.Time) (map[uint64]struct{}, error)
	// ExhaustedCategoryIDs returns the IDs of categories whose executions
	// started on the given day already reached their daily limit.
	ExhaustedCategoryIDs(ctx context.Context, day time.Time) (map[uint64]struct{}, error)
	StartExecution(ctx context.Context, activityID uint64, now time.Time) (domain.StartResult, error)
	CompleteExecution(ctx context.Context, scheduleID uint64, now time.Time) (domain.CompleteResult, error)
	ListHistory(ctx context.Context) ([]domain.HistoryEntry, error)
}

type QuotaService interface {
	CanExecuteMore(ctx context.Context, categoryID uint64, day time.Time) (bool, error)
	RemainingExecutions(ctx context.Context, categoryID uint64, day time.Time) (int, error)
}

type ActivityService interface {
	List(ctx context.Context, categoryID *uint64) ([]domain.ActivitySummary, error)
	Get(ctx context.Context, id uint64) (domain.ActivitySummary, error)
	Create(ctx context.Context, input domain.CreateActivityInput) (domain.ActivitySummary, error)
	Update(ctx context.Context, id uint64, input domain.UpdateActivityInput) (domain.ActivitySummary, error)
	Delete(ctx context.Context, id uint64) error
	SelectNext(ctx context.Context) (domain.ActivitySummary, error)
	Start(ctx context.Context, activityID uint64) (domain.StartResult, error)
	Complete(ctx context.Context, scheduleID uint64) (domain.CompleteResult, error)
	ListHistory(ctx context.Context) ([]domain.HistoryEntry, error)
}
