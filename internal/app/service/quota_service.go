package service

import (
	"context"
	"time"

	"github.com/barscka/backend-pomodoro-task/internal/core/ports"
)

// QuotaService answers whether a category may still execute activities on a
// given day. Counts are always derived from history records at the moment of
// the check; nothing is cached or stored.
type QuotaService struct {
	categories ports.CategoryRepository
	executions ports.ExecutionRepository
}

var _ ports.QuotaService = (*QuotaService)(nil)

func NewQuotaService(categories ports.CategoryRepository, executions ports.ExecutionRepository) *QuotaService {
	return &QuotaService{categories: categories, executions: executions}
}

func (s *QuotaService) CanExecuteMore(ctx context.Context, categoryID uint64, day time.Time) (bool, error) {
	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return false, err
	}

	executedToday, err := s.executions.CountStartedOn(ctx, categoryID, day)
	if err != nil {
		return false, err
	}

	return category.CanExecuteMore(executedToday), nil
}

func (s *QuotaService) RemainingExecutions(ctx context.Context, categoryID uint64, day time.Time) (int, error) {
	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return 0, err
	}

	executedToday, err := s.executions.CountStartedOn(ctx, categoryID, day)
	if err != nil {
		return 0, err
	}

	return category.RemainingExecutions(executedToday), nil
}
