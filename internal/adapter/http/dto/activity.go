package dto

type Category struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ActivityItem struct {
	ID                  uint64    `json:"id"`
	Name                string    `json:"name"`
	Description         *string   `json:"description,omitempty"`
	Duration            int       `json:"duration"`
	Priority            int       `json:"priority"`
	Category            *Category `json:"category,omitempty"`
	CreatedAt           string    `json:"created_at"`
	LastExecuted        *string   `json:"last_executed,omitempty"`
	CanExecute          bool      `json:"can_execute"`
	RemainingExecutions *int      `json:"remaining_executions"`
}

type CreateActivityRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Duration    *int    `json:"duration" binding:"omitempty,gt=0,lte=1440"`
	Priority    *int    `json:"priority" binding:"omitempty,gte=0,lte=127"`
	CategoryID  *uint64 `json:"category_id" binding:"omitempty,gt=0"`
}

type UpdateActivityRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Duration    *int    `json:"duration" binding:"omitempty,gt=0,lte=1440"`
	Priority    *int    `json:"priority" binding:"omitempty,gte=0,lte=127"`
	CategoryID  *uint64 `json:"category_id" binding:"omitempty,gt=0"`
}

const (
	ExecutionStatusStarted          = "started"
	ExecutionStatusAlreadyRunning   = "already_running"
	ExecutionStatusCompleted        = "completed"
	ExecutionStatusAlreadyCompleted = "already_completed"
)

type StartActivityResponse struct {
	Status     string       `json:"status"`
	ScheduleID uint64       `json:"schedule_id"`
	StartedAt  string       `json:"started_at"`
	Activity   ActivityItem `json:"activity"`
}

type CompleteActivityRequest struct {
	ScheduleID uint64 `json:"schedule_id" binding:"required,gt=0"`
}

type CompleteActivityResponse struct {
	Status          string `json:"status"`
	ScheduleID      uint64 `json:"schedule_id"`
	HistoryID       uint64 `json:"history_id"`
	CompletedAt     string `json:"completed_at"`
	DurationMinutes int    `json:"duration_minutes"`
}

type HistoryItem struct {
	ID              uint64    `json:"id"`
	ScheduleID      uint64    `json:"schedule_id"`
	ActivityID      uint64    `json:"activity_id"`
	ActivityName    string    `json:"activity_name"`
	Category        *Category `json:"category,omitempty"`
	StartedAt       string    `json:"started_at"`
	EndedAt         *string   `json:"ended_at,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Completed       bool      `json:"completed"`
	Notes           *string   `json:"notes,omitempty"`
}

// NextActivityDiagnostic is the 404 body of the next-activity endpoint,
// reporting why every candidate was excluded.
type NextActivityDiagnostic struct {
	Detail                 string `json:"detail"`
	ExcludedCompletedToday int    `json:"excluded_completed_today"`
	ExcludedQuotaExhausted int    `json:"excluded_quota_exhausted"`
}

// HistoryEmptyResponse is the 404 body of the history endpoint when nothing
// has been executed yet.
type HistoryEmptyResponse struct {
	Detail     string `json:"detail"`
	Suggestion string `json:"suggestion"`
}
