package domain

import "time"

// Schedule is the execution slot of one activity on one calendar day.
// At most one schedule may exist per (activity, scheduled date); the storage
// layer enforces this with a uniqueness constraint.
type Schedule struct {
	ID            uint64
	ActivityID    uint64
	ScheduledDate time.Time
	StartedAt     time.Time
	EndedAt       *time.Time
	Completed     bool
	CreatedAt     time.Time
}

// DurationUntil returns the whole minutes elapsed between the schedule start
// and end, truncating partial minutes and flooring at zero.
func (s Schedule) DurationUntil(end time.Time) int {
	elapsed := end.Sub(s.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}

// History is the realized record of one execution. Duration is only set once
// EndedAt is set.
type History struct {
	ID         uint64
	ActivityID uint64
	ScheduleID uint64
	StartedAt  time.Time
	EndedAt    *time.Time
	Duration   *int // minutes
	Notes      *string
}

// Execution pairs a schedule with its one-to-one history record.
type Execution struct {
	Schedule Schedule
	History  History
}

type StartResult struct {
	Execution Execution
	Activity  ActivitySummary
	// AlreadyRunning is set when a schedule already existed for the activity
	// today; the existing execution is returned unchanged.
	AlreadyRunning bool
}

type CompleteResult struct {
	Execution Execution
	// AlreadyCompleted marks the idempotent no-op outcome of completing a
	// schedule twice.
	AlreadyCompleted bool
}

// HistoryEntry is a history record joined with its activity and category for
// listing.
type HistoryEntry struct {
	History
	ActivityName string
	Category     *Category
}
