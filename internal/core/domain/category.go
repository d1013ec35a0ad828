package domain

import "time"

type Category struct {
	ID                 uint64
	Name               string
	Description        *string
	Color              string
	MaxDailyExecutions int
	CreatedAt          time.Time
}

// CanExecuteMore reports whether the category may start another execution
// given how many of its activities already started today. The count must be
// derived from history records at the moment of the check, never from a
// stored counter.
func (c Category) CanExecuteMore(executedToday int) bool {
	return executedToday < c.MaxDailyExecutions
}

// RemainingExecutions returns how many executions the category has left
// today, floored at zero.
func (c Category) RemainingExecutions(executedToday int) int {
	remaining := c.MaxDailyExecutions - executedToday
	if remaining < 0 {
		return 0
	}
	return remaining
}
