package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/dto"
	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/handlers"
	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/middleware"
	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
	"github.com/barscka/backend-pomodoro-task/pkg/apierrors"
	"github.com/barscka/backend-pomodoro-task/pkg/translator"
)

type activityServiceMock struct {
	mock.Mock
}

func (m *activityServiceMock) List(ctx context.Context, categoryID *uint64) ([]domain.ActivitySummary, error) {
	args := m.Called(ctx, categoryID)

	var summaries []domain.ActivitySummary
	if value := args.Get(0); value != nil {
		summaries = value.([]domain.ActivitySummary)
	}
	return summaries, args.Error(1)
}

func (m *activityServiceMock) Get(ctx context.Context, id uint64) (domain.ActivitySummary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ActivitySummary), args.Error(1)
}

func (m *activityServiceMock) Create(ctx context.Context, input domain.CreateActivityInput) (domain.ActivitySummary, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.ActivitySummary), args.Error(1)
}

func (m *activityServiceMock) Update(ctx context.Context, id uint64, input domain.UpdateActivityInput) (domain.ActivitySummary, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.ActivitySummary), args.Error(1)
}

func (m *activityServiceMock) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *activityServiceMock) SelectNext(ctx context.Context) (domain.ActivitySummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ActivitySummary), args.Error(1)
}

func (m *activityServiceMock) Start(ctx context.Context, activityID uint64) (domain.StartResult, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).(domain.StartResult), args.Error(1)
}

func (m *activityServiceMock) Complete(ctx context.Context, scheduleID uint64) (domain.CompleteResult, error) {
	args := m.Called(ctx, scheduleID)
	return args.Get(0).(domain.CompleteResult), args.Error(1)
}

func (m *activityServiceMock) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx)

	var entries []domain.HistoryEntry
	if value := args.Get(0); value != nil {
		entries = value.([]domain.HistoryEntry)
	}
	return entries, args.Error(1)
}

func newActivityRouter(handler *handlers.ActivityHandler) *gin.Engine {
	router := gin.New()
	activities := router.Group("/api/activities", middleware.LanguageMiddleware())
	activities.GET("", handler.ListActivities)
	activities.POST("", handler.CreateActivity)
	activities.GET("/next", handler.NextActivity)
	activities.GET("/history", handler.ListHistory)
	activities.POST("/complete", handler.CompleteActivity)
	activities.GET("/:id", handler.GetActivity)
	activities.PATCH("/:id", handler.UpdateActivity)
	activities.DELETE("/:id", handler.DeleteActivity)
	activities.POST("/:id/start", handler.StartActivity)
	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func studySummary() domain.ActivitySummary {
	description := "daily reading block"
	remaining := 1
	lastExecuted := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	return domain.ActivitySummary{
		Activity: domain.Activity{
			ID:          1,
			Name:        "Read paper",
			Description: &description,
			Duration:    25,
			Priority:    2,
			Category: &domain.Category{
				ID:                 1,
				Name:               "Study",
				Color:              "#00FF00",
				MaxDailyExecutions: 2,
			},
			LastExecuted: &lastExecuted,
			CreatedAt:    time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC),
		},
		CanExecute:          true,
		RemainingExecutions: &remaining,
	}
}

func TestActivityHandler_ListActivities_Success(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("List", mock.Anything, (*uint64)(nil)).Return([]domain.ActivitySummary{studySummary()}, nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.ActivityItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, uint64(1), got[0].ID)
	require.Equal(t, "Read paper", got[0].Name)
	require.Equal(t, "daily reading block", *got[0].Description)
	require.Equal(t, 25, got[0].Duration)
	require.Equal(t, 2, got[0].Priority)
	require.Equal(t, "2026-03-01T10:20:30Z", got[0].CreatedAt)
	require.Equal(t, "2026-03-09T15:00:00Z", *got[0].LastExecuted)
	require.True(t, got[0].CanExecute)
	require.Equal(t, 1, *got[0].RemainingExecutions)
	require.NotNil(t, got[0].Category)
	require.Equal(t, "Study", got[0].Category.Name)
	require.Equal(t, "#00FF00", got[0].Category.Color)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_ListActivities_CategoryFilter(t *testing.T) {
	categoryID := uint64(1)

	serviceMock := new(activityServiceMock)
	serviceMock.On("List", mock.Anything, &categoryID).Return([]domain.ActivitySummary{}, nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities?category_id=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_ListActivities_InvalidCategoryFilter(t *testing.T) {
	serviceMock := new(activityServiceMock)
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities?category_id=oops", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestActivityHandler_ListActivities_Error(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("List", mock.Anything, (*uint64)(nil)).Return(nil, errors.New("db is down")).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusInternalServerError, got.ErrDetails.Code)
	require.Equal(t, "Could not retrieve activities.", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_NextActivity_Success(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("SelectNext", mock.Anything).Return(studySummary(), nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities/next", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.ActivityItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(1), got.ID)
	require.True(t, got.CanExecute)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_NextActivity_NoneEligible(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("SelectNext", mock.Anything).Return(
		domain.ActivitySummary{},
		domain.NoEligibleActivityError{CompletedToday: 2, QuotaExhausted: 1},
	).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities/next", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got dto.NextActivityDiagnostic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "No eligible activity: daily limits reached or everything already completed today", got.Detail)
	require.Equal(t, 2, got.ExcludedCompletedToday)
	require.Equal(t, 1, got.ExcludedQuotaExhausted)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_NextActivity_Error(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("SelectNext", mock.Anything).Return(domain.ActivitySummary{}, errors.New("db is down")).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities/next", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_StartActivity_Created(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	serviceMock := new(activityServiceMock)
	serviceMock.On("Start", mock.Anything, uint64(1)).Return(domain.StartResult{
		Execution: domain.Execution{
			Schedule: domain.Schedule{ID: 42, ActivityID: 1, StartedAt: startedAt},
			History:  domain.History{ID: 7, ActivityID: 1, ScheduleID: 42, StartedAt: startedAt},
		},
		Activity: studySummary(),
	}, nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/1/start", "")

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.StartActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, dto.ExecutionStatusStarted, got.Status)
	require.Equal(t, uint64(42), got.ScheduleID)
	require.Equal(t, "2026-03-10T14:30:00Z", got.StartedAt)
	require.Equal(t, uint64(1), got.Activity.ID)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_StartActivity_AlreadyRunning(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	serviceMock := new(activityServiceMock)
	serviceMock.On("Start", mock.Anything, uint64(1)).Return(domain.StartResult{
		Execution: domain.Execution{
			Schedule: domain.Schedule{ID: 42, ActivityID: 1, StartedAt: startedAt},
			History:  domain.History{ID: 7, ActivityID: 1, ScheduleID: 42, StartedAt: startedAt},
		},
		Activity:       studySummary(),
		AlreadyRunning: true,
	}, nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/1/start", "")

	// The second same-day start returns the existing schedule unchanged.
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.StartActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, dto.ExecutionStatusAlreadyRunning, got.Status)
	require.Equal(t, uint64(42), got.ScheduleID)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_StartActivity_QuotaExceeded(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Start", mock.Anything, uint64(1)).Return(
		domain.StartResult{},
		domain.QuotaExceededError{CategoryName: "Study", MaxDaily: 2},
	).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/1/start", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusBadRequest, got.ErrDetails.Code)
	require.Equal(t, "Daily limit of 2 executions reached for category Study", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_StartActivity_NotFound(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Start", mock.Anything, uint64(999)).Return(domain.StartResult{}, domain.ErrActivityNotFound).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/999/start", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Activity not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_StartActivity_InvalidID(t *testing.T) {
	serviceMock := new(activityServiceMock)
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/invalid/start", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid id", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestActivityHandler_CompleteActivity_Success(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	endedAt := startedAt.Add(25 * time.Minute)
	duration := 25

	serviceMock := new(activityServiceMock)
	serviceMock.On("Complete", mock.Anything, uint64(42)).Return(domain.CompleteResult{
		Execution: domain.Execution{
			Schedule: domain.Schedule{ID: 42, ActivityID: 1, StartedAt: startedAt, EndedAt: &endedAt, Completed: true},
			History:  domain.History{ID: 7, ActivityID: 1, ScheduleID: 42, StartedAt: startedAt, EndedAt: &endedAt, Duration: &duration},
		},
	}, nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/complete", `{"schedule_id": 42}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.CompleteActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, dto.ExecutionStatusCompleted, got.Status)
	require.Equal(t, uint64(42), got.ScheduleID)
	require.Equal(t, uint64(7), got.HistoryID)
	require.Equal(t, "2026-03-10T14:55:00Z", got.CompletedAt)
	require.Equal(t, 25, got.DurationMinutes)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_CompleteActivity_AlreadyCompleted(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	endedAt := startedAt.Add(25 * time.Minute)
	duration := 25

	serviceMock := new(activityServiceMock)
	serviceMock.On("Complete", mock.Anything, uint64(42)).Return(domain.CompleteResult{
		Execution: domain.Execution{
			Schedule: domain.Schedule{ID: 42, ActivityID: 1, StartedAt: startedAt, EndedAt: &endedAt, Completed: true},
			History:  domain.History{ID: 7, ActivityID: 1, ScheduleID: 42, StartedAt: startedAt, EndedAt: &endedAt, Duration: &duration},
		},
		AlreadyCompleted: true,
	}, nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/complete", `{"schedule_id": 42}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.CompleteActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, dto.ExecutionStatusAlreadyCompleted, got.Status)
	require.Equal(t, 25, got.DurationMinutes)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_CompleteActivity_ScheduleNotFound(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Complete", mock.Anything, uint64(999)).Return(domain.CompleteResult{}, domain.ErrScheduleNotFound).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/complete", `{"schedule_id": 999}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Schedule not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_CompleteActivity_InvalidPayload(t *testing.T) {
	serviceMock := new(activityServiceMock)
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities/complete", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestActivityHandler_ListHistory_Success(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	endedAt := startedAt.Add(25 * time.Minute)
	duration := 25

	serviceMock := new(activityServiceMock)
	serviceMock.On("ListHistory", mock.Anything).Return([]domain.HistoryEntry{
		{
			History: domain.History{
				ID:         7,
				ActivityID: 1,
				ScheduleID: 42,
				StartedAt:  startedAt,
				EndedAt:    &endedAt,
				Duration:   &duration,
			},
			ActivityName: "Read paper",
			Category:     &domain.Category{ID: 1, Name: "Study", Color: "#00FF00", MaxDailyExecutions: 2},
		},
	}, nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities/history", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.HistoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, uint64(7), got[0].ID)
	require.Equal(t, uint64(42), got[0].ScheduleID)
	require.Equal(t, "Read paper", got[0].ActivityName)
	require.True(t, got[0].Completed)
	require.Equal(t, 25, *got[0].DurationMinutes)
	require.NotNil(t, got[0].Category)
	require.Equal(t, "Study", got[0].Category.Name)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_ListHistory_Empty(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("ListHistory", mock.Anything).Return(nil, domain.ErrHistoryEmpty).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities/history", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got dto.HistoryEmptyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "No executions recorded yet", got.Detail)
	require.Equal(t, "Start an activity with POST /api/activities/{id}/start/", got.Suggestion)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_CreateActivity_Success(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Create", mock.Anything, mock.MatchedBy(func(input domain.CreateActivityInput) bool {
		return input.Name == "Read paper" && input.Duration == 25 && input.Priority == 1
	})).Return(studySummary(), nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities",
		`{"name": "Read paper", "duration": 25, "category_id": 1}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.ActivityItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(1), got.ID)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_CreateActivity_UnknownCategory(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Create", mock.Anything, mock.Anything).Return(domain.ActivitySummary{}, domain.ErrCategoryNotFound).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities",
		`{"name": "Read paper", "category_id": 99}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Category not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_CreateActivity_InvalidPayload(t *testing.T) {
	serviceMock := new(activityServiceMock)
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPost, "/api/activities", `{"name": "   "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestActivityHandler_GetActivity_Success(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Get", mock.Anything, uint64(1)).Return(studySummary(), nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities/1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.ActivityItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(1), got.ID)
	require.Equal(t, "Read paper", got.Name)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_GetActivity_NotFound(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Get", mock.Anything, uint64(999)).Return(domain.ActivitySummary{}, domain.ErrActivityNotFound).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodGet, "/api/activities/999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Activity not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_UpdateActivity_Success(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Update", mock.Anything, uint64(1), mock.MatchedBy(func(input domain.UpdateActivityInput) bool {
		return input.Name != nil && *input.Name == "Read two papers" && input.Duration == nil
	})).Return(studySummary(), nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPatch, "/api/activities/1",
		`{"name": "Read two papers"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_UpdateActivity_NotFound(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Update", mock.Anything, uint64(999), mock.Anything).
		Return(domain.ActivitySummary{}, domain.ErrActivityNotFound).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodPatch, "/api/activities/999",
		`{"name": "Read two papers"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestActivityHandler_DeleteActivity_NoContent(t *testing.T) {
	serviceMock := new(activityServiceMock)
	serviceMock.On("Delete", mock.Anything, uint64(1)).Return(nil).Once()
	handler := handlers.NewActivityHandler(serviceMock)

	rec := performRequest(t, newActivityRouter(handler), http.MethodDelete, "/api/activities/1", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())
	serviceMock.AssertExpectations(t)
}

func TestAPIKeyMiddleware_RejectsMissingKey(t *testing.T) {
	router := gin.New()
	router.GET("/api/activities",
		middleware.LanguageMiddleware(),
		middleware.APIKeyMiddleware("secret"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	rec := performRequest(t, router, http.MethodGet, "/api/activities", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Missing or invalid API key", got.ErrDetails.Message)
}

func TestAPIKeyMiddleware_AcceptsValidKey(t *testing.T) {
	router := gin.New()
	router.GET("/api/activities",
		middleware.LanguageMiddleware(),
		middleware.APIKeyMiddleware("secret"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/api/activities", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
