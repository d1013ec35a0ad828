package domain

import (
	"errors"
	"fmt"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrHistoryEmpty     = errors.New("history is empty")
)

// QuotaExceededError signals that a category reached its daily execution
// limit before a start could be recorded.
type QuotaExceededError struct {
	CategoryName string
	MaxDaily     int
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit of %d executions reached for category %q", e.MaxDaily, e.CategoryName)
}

// NoEligibleActivityError reports why no activity could be selected: how many
// candidates were excluded for being completed today and how many for
// belonging to a quota-exhausted category.
type NoEligibleActivityError struct {
	CompletedToday int
	QuotaExhausted int
}

func (e NoEligibleActivityError) Error() string {
	return fmt.Sprintf(
		"no eligible activity: %d completed today, %d in exhausted categories",
		e.CompletedToday, e.QuotaExhausted,
	)
}
