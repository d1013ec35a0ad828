package mapper

import (
	"time"

	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/dto"
	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
)

func ToActivityItems(summaries []domain.ActivitySummary) []dto.ActivityItem {
	items := make([]dto.ActivityItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, ToActivityItem(summary))
	}
	return items
}

func ToActivityItem(summary domain.ActivitySummary) dto.ActivityItem {
	item := dto.ActivityItem{
		ID:         summary.ID,
		Name:       summary.Name,
		Duration:   summary.Duration,
		Priority:   summary.Priority,
		CreatedAt:  summary.CreatedAt.Format(time.RFC3339),
		CanExecute: summary.CanExecute,
	}

	if summary.Description != nil {
		value := *summary.Description
		item.Description = &value
	}

	if summary.LastExecuted != nil {
		value := summary.LastExecuted.Format(time.RFC3339)
		item.LastExecuted = &value
	}

	if summary.Category != nil {
		item.Category = toCategory(*summary.Category)
	}

	if summary.RemainingExecutions != nil {
		value := *summary.RemainingExecutions
		item.RemainingExecutions = &value
	}

	return item
}

func ToStartResponse(result domain.StartResult) dto.StartActivityResponse {
	status := dto.ExecutionStatusStarted
	if result.AlreadyRunning {
		status = dto.ExecutionStatusAlreadyRunning
	}

	return dto.StartActivityResponse{
		Status:     status,
		ScheduleID: result.Execution.Schedule.ID,
		StartedAt:  result.Execution.Schedule.StartedAt.Format(time.RFC3339),
		Activity:   ToActivityItem(result.Activity),
	}
}

func ToCompleteResponse(result domain.CompleteResult) dto.CompleteActivityResponse {
	status := dto.ExecutionStatusCompleted
	if result.AlreadyCompleted {
		status = dto.ExecutionStatusAlreadyCompleted
	}

	response := dto.CompleteActivityResponse{
		Status:     status,
		ScheduleID: result.Execution.Schedule.ID,
		HistoryID:  result.Execution.History.ID,
	}

	if result.Execution.History.EndedAt != nil {
		response.CompletedAt = result.Execution.History.EndedAt.Format(time.RFC3339)
	}
	if result.Execution.History.Duration != nil {
		response.DurationMinutes = *result.Execution.History.Duration
	}

	return response
}

func ToHistoryItems(entries []domain.HistoryEntry) []dto.HistoryItem {
	items := make([]dto.HistoryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toHistoryItem(entry))
	}
	return items
}

func toHistoryItem(entry domain.HistoryEntry) dto.HistoryItem {
	item := dto.HistoryItem{
		ID:           entry.ID,
		ScheduleID:   entry.ScheduleID,
		ActivityID:   entry.ActivityID,
		ActivityName: entry.ActivityName,
		StartedAt:    entry.StartedAt.Format(time.RFC3339),
		Completed:    entry.EndedAt != nil,
	}

	if entry.EndedAt != nil {
		value := entry.EndedAt.Format(time.RFC3339)
		item.EndedAt = &value
	}

	if entry.Duration != nil {
		value := *entry.Duration
		item.DurationMinutes = &value
	}

	if entry.Notes != nil {
		value := *entry.Notes
		item.Notes = &value
	}

	if entry.Category != nil {
		item.Category = toCategory(*entry.Category)
	}

	return item
}

func toCategory(category domain.Category) *dto.Category {
	return &dto.Category{
		ID:    category.ID,
		Name:  category.Name,
		Color: category.Color,
	}
}
