package validators

import (
	"strings"

	dto "log-owl.com/log-owl/internal/data_models"
	apperrors "log-owl.com/log-owl/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	return nil
}
