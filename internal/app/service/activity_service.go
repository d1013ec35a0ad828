package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
	"github.com/barscka/backend-pomodoro-task/internal/core/ports"
)

// ActivityService implements activity CRUD, daily-quota-aware selection and
// the start/complete execution lifecycle.
type ActivityService struct {
	activities ports.ActivityRepository
	categories ports.CategoryRepository
	executions ports.ExecutionRepository

	now  func() time.Time
	pick func(n int) int
}

var _ ports.ActivityService = (*ActivityService)(nil)

func NewActivityService(
	activities ports.ActivityRepository,
	categories ports.CategoryRepository,
	executions ports.ExecutionRepository,
) *ActivityService {
	return &ActivityService{
		activities: activities,
		categories: categories,
		executions: executions,
		now:        time.Now,
		pick:       rand.Intn,
	}
}

func (s *ActivityService) List(ctx context.Context, categoryID *uint64) ([]domain.ActivitySummary, error) {
	activities, err := s.activities.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	counts, err := s.executions.CountsByCategory(ctx, s.now())
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ActivitySummary, 0, len(activities))
	for _, activity := range activities {
		summaries = append(summaries, annotate(activity, counts))
	}

	return summaries, nil
}

func (s *ActivityService) Get(ctx context.Context, id uint64) (domain.ActivitySummary, error) {
	activity, err := s.activities.Get(ctx, id)
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	return s.annotateOne(ctx, activity)
}

func (s *ActivityService) Create(ctx context.Context, input domain.CreateActivityInput) (domain.ActivitySummary, error) {
	if input.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *input.CategoryID); err != nil {
			return domain.ActivitySummary{}, err
		}
	}

	activity, err := s.activities.Create(ctx, input)
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	return s.annotateOne(ctx, activity)
}

func (s *ActivityService) Update(ctx context.Context, id uint64, input domain.UpdateActivityInput) (domain.ActivitySummary, error) {
	if _, err := s.activities.Get(ctx, id); err != nil {
		return domain.ActivitySummary{}, err
	}

	if input.CategoryIDSet && input.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *input.CategoryID); err != nil {
			return domain.ActivitySummary{}, err
		}
	}

	activity, err := s.activities.Update(ctx, id, input)
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	return s.annotateOne(ctx, activity)
}

func (s *ActivityService) Delete(ctx context.Context, id uint64) error {
	return s.activities.Delete(ctx, id)
}

// SelectNext picks one eligible activity uniformly at random. An activity is
// eligible when it has not been completed today and its category has not
// exhausted its daily quota. Activities without a category carry no quota.
func (s *ActivityService) SelectNext(ctx context.Context) (domain.ActivitySummary, error) {
	day := s.now()

	candidates, err := s.activities.List(ctx, nil)
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	completed, err := s.executions.CompletedActivityIDs(ctx, day)
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	exhausted, err := s.executions.ExhaustedCategoryIDs(ctx, day)
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	var completedCount, exhaustedCount int
	eligible := make([]domain.Activity, 0, len(candidates))
	for _, activity := range candidates {
		if _, ok := completed[activity.ID]; ok {
			completedCount++
			continue
		}
		if activity.Category != nil {
			if _, ok := exhausted[activity.Category.ID]; ok {
				exhaustedCount++
				continue
			}
		}
		eligible = append(eligible, activity)
	}

	if len(eligible) == 0 {
		return domain.ActivitySummary{}, domain.NoEligibleActivityError{
			CompletedToday: completedCount,
			QuotaExhausted: exhaustedCount,
		}
	}

	return s.annotateOne(ctx, eligible[s.pick(len(eligible))])
}

func (s *ActivityService) Start(ctx context.Context, activityID uint64) (domain.StartResult, error) {
	return s.executions.StartExecution(ctx, activityID, s.now())
}

func (s *ActivityService) Complete(ctx context.Context, scheduleID uint64) (domain.CompleteResult, error) {
	return s.executions.CompleteExecution(ctx, scheduleID, s.now())
}

func (s *ActivityService) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	entries, err := s.executions.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrHistoryEmpty
	}
	return entries, nil
}

func (s *ActivityService) annotateOne(ctx context.Context, activity domain.Activity) (domain.ActivitySummary, error) {
	summary := domain.ActivitySummary{Activity: activity, CanExecute: true}
	if activity.Category == nil {
		return summary, nil
	}

	executedToday, err := s.executions.CountStartedOn(ctx, activity.Category.ID, s.now())
	if err != nil {
		return domain.ActivitySummary{}, err
	}

	summary.CanExecute = activity.Category.CanExecuteMore(executedToday)
	remaining := activity.Category.RemainingExecutions(executedToday)
	summary.RemainingExecutions = &remaining
	return summary, nil
}

func annotate(activity domain.Activity, countsByCategory map[uint64]int) domain.ActivitySummary {
	summary := domain.ActivitySummary{Activity: activity, CanExecute: true}
	if activity.Category == nil {
		return summary
	}

	executedToday := countsByCategory[activity.Category.ID]
	summary.CanExecute = activity.Category.CanExecuteMore(executedToday)
	remaining := activity.Category.RemainingExecutions(executedToday)
	summary.RemainingExecutions = &remaining
	return summary
}
