package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/dto"
	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/mapper"
	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/middleware"
	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/validation"
	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
	"github.com/barscka/backend-pomodoro-task/internal/core/ports"
	"github.com/barscka/backend-pomodoro-task/pkg/apierrors"
)

type ActivityHandler struct {
	activityService ports.ActivityService
}

func NewActivityHandler(activityService ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	lang := middleware.GetLang(c)

	var categoryID *uint64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidActivityID, lang),
			)
			return
		}
		categoryID = &id
	}

	activities, err := h.activityService.List(c.Request.Context(), categoryID)
	if err != nil {
		zap.L().Error("failed to list activities", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListActivities, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToActivityItems(activities))
}

func (h *ActivityHandler) GetActivity(c *gin.Context) {
	lang := middleware.GetLang(c)

	activityID, ok := parseIDParam(c, lang)
	if !ok {
		return
	}

	activity, err := h.activityService.Get(c.Request.Context(), activityID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgActivityNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to get activity", zap.Uint64("activity_id", activityID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailGetActivity, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToActivityItem(activity))
}

func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateActivityRequest
	raw, ok := bindJSONWithRaw(c, &req)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidActivityPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateActivityInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidActivityPayload, lang),
		)
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgCategoryNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to create activity", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateActivity, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToActivityItem(activity))
}

func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	lang := middleware.GetLang(c)

	activityID, ok := parseIDParam(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	raw, ok := bindJSONWithRaw(c, &req)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidActivityPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateActivityInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidActivityPayload, lang),
		)
		return
	}

	activity, err := h.activityService.Update(c.Request.Context(), activityID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgActivityNotFound, lang),
			)
		case errors.Is(err, domain.ErrCategoryNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgCategoryNotFound, lang),
			)
		default:
			zap.L().Error("failed to update activity", zap.Uint64("activity_id", activityID), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateActivity, lang),
			)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToActivityItem(activity))
}

func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	lang := middleware.GetLang(c)

	activityID, ok := parseIDParam(c, lang)
	if !ok {
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), activityID); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgActivityNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to delete activity", zap.Uint64("activity_id", activityID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteActivity, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ActivityHandler) NextActivity(c *gin.Context) {
	lang := middleware.GetLang(c)

	activity, err := h.activityService.SelectNext(c.Request.Context())
	if err != nil {
		var noEligible domain.NoEligibleActivityError
		if errors.As(err, &noEligible) {
			c.JSON(http.StatusNotFound, dto.NextActivityDiagnostic{
				Detail:                 apierrors.GetTransErrorMsg(apierrors.MsgNoEligibleActivity, lang),
				ExcludedCompletedToday: noEligible.CompletedToday,
				ExcludedQuotaExhausted: noEligible.QuotaExhausted,
			})
			return
		}

		zap.L().Error("failed to pick next activity", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailNextActivity, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToActivityItem(activity))
}

func (h *ActivityHandler) StartActivity(c *gin.Context) {
	lang := middleware.GetLang(c)

	activityID, ok := parseIDParam(c, lang)
	if !ok {
		return
	}

	result, err := h.activityService.Start(c.Request.Context(), activityID)
	if err != nil {
		var quotaErr domain.QuotaExceededError
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgActivityNotFound, lang),
			)
		case errors.As(err, &quotaErr):
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateErrorData(http.StatusBadRequest, apierrors.MsgQuotaExceeded, lang, map[string]interface{}{
					"MaxDaily": quotaErr.MaxDaily,
					"Category": quotaErr.CategoryName,
				}),
			)
		default:
			zap.L().Error("failed to start activity", zap.Uint64("activity_id", activityID), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailStartActivity, lang),
			)
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyRunning {
		// An existing same-day schedule is returned unchanged; nothing new
		// was created.
		status = http.StatusOK
	}

	c.JSON(status, mapper.ToStartResponse(result))
}

func (h *ActivityHandler) CompleteActivity(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CompleteActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCompletePayload, lang),
		)
		return
	}

	result, err := h.activityService.Complete(c.Request.Context(), req.ScheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgScheduleNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to complete activity", zap.Uint64("schedule_id", req.ScheduleID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCompleteActivity, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToCompleteResponse(result))
}

func (h *ActivityHandler) ListHistory(c *gin.Context) {
	lang := middleware.GetLang(c)

	entries, err := h.activityService.ListHistory(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrHistoryEmpty) {
			c.JSON(http.StatusNotFound, dto.HistoryEmptyResponse{
				Detail:     apierrors.GetTransErrorMsg(apierrors.MsgHistoryEmpty, lang),
				Suggestion: apierrors.GetTransErrorMsg(apierrors.MsgHistoryEmptyHint, lang),
			})
			return
		}

		zap.L().Error("failed to list history", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListHistory, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToHistoryItems(entries))
}

func parseIDParam(c *gin.Context, lang string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidActivityID, lang),
		)
		return 0, false
	}
	return id, true
}

// bindJSONWithRaw binds the body into req and also returns the raw field map
// so callers can tell absent fields apart from explicit nulls.
func bindJSONWithRaw(c *gin.Context, req interface{}) (map[string]json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false
	}

	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, false
	}

	return raw, true
}
