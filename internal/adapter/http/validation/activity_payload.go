package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/barscka/backend-pomodoro-task/internal/adapter/http/dto"
	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
)

var ErrInvalidActivityPayload = errors.New("invalid activity payload")

const (
	defaultDuration = 60
	defaultPriority = 1
)

func BuildCreateActivityInput(req dto.CreateActivityRequest, raw map[string]json.RawMessage) (domain.CreateActivityInput, error) {
	if hasJSONField(raw, "duration") && req.Duration == nil {
		return domain.CreateActivityInput{}, ErrInvalidActivityPayload
	}
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.CreateActivityInput{}, ErrInvalidActivityPayload
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateActivityInput{}, ErrInvalidActivityPayload
	}

	duration := defaultDuration
	if req.Duration != nil {
		duration = *req.Duration
	}

	priority := defaultPriority
	if req.Priority != nil {
		priority = *req.Priority
	}

	return domain.CreateActivityInput{
		Name:        name,
		Description: req.Description,
		Duration:    duration,
		Priority:    priority,
		CategoryID:  req.CategoryID,
	}, nil
}

func BuildUpdateActivityInput(req dto.UpdateActivityRequest, raw map[string]json.RawMessage) (domain.UpdateActivityInput, error) {
	if !hasActivityUpdateFields(raw) {
		return domain.UpdateActivityInput{}, ErrInvalidActivityPayload
	}

	var name *string
	if hasJSONField(raw, "name") && req.Name == nil {
		return domain.UpdateActivityInput{}, ErrInvalidActivityPayload
	}
	if req.Name != nil {
		value := strings.TrimSpace(*req.Name)
		if value == "" {
			return domain.UpdateActivityInput{}, ErrInvalidActivityPayload
		}
		name = &value
	}

	if hasJSONField(raw, "duration") && req.Duration == nil {
		return domain.UpdateActivityInput{}, ErrInvalidActivityPayload
	}
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.UpdateActivityInput{}, ErrInvalidActivityPayload
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateActivityInput{}, ErrInvalidActivityPayload
	}

	categoryIDSet := hasJSONField(raw, "category_id")
	if categoryIDSet && !isJSONNull(raw["category_id"]) && req.CategoryID == nil {
		return domain.UpdateActivityInput{}, ErrInvalidActivityPayload
	}

	return domain.UpdateActivityInput{
		Name:           name,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
		Duration:       req.Duration,
		Priority:       req.Priority,
		CategoryID:     req.CategoryID,
		CategoryIDSet:  categoryIDSet,
	}, nil
}

func hasActivityUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "name") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "duration") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "category_id")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
