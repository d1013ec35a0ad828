package domain

import "time"

type Activity struct {
	ID           uint64
	Name         string
	Description  *string
	Duration     int // minutes
	Priority     int
	Category     *Category
	LastExecuted *time.Time
	CreatedAt    time.Time
}

// ActivitySummary is an Activity annotated with the live quota state of its
// category. RemainingExecutions is nil for uncategorized activities, which
// carry no quota.
type ActivitySummary struct {
	Activity
	CanExecute          bool
	RemainingExecutions *int
}

type CreateActivityInput struct {
	Name        string
	Description *string
	Duration    int
	Priority    int
	CategoryID  *uint64
}

type UpdateActivityInput struct {
	Name           *string
	Description    *string
	DescriptionSet bool
	Duration       *int
	Priority       *int
	CategoryID     *uint64
	CategoryIDSet  bool
}
