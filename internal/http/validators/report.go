package validators

import (
	dto "log-owl.com/log-owl/internal/data_models"
	apperrors "log-owl.com/log-owl/internal/errors"
	"log-owl.com/log-owl/pkg/timestamp"
)

func ValidateReportQuery(q *dto.ReportQuery) error {
	from, err := timestamp.Parse(q.From)
	if err != nil {
		return apperrors.ErrInvalidTimestamp
	}
	to, err := timestamp.Parse(q.To)
	if err != nil {
		return apperrors.ErrInvalidTimestamp
	}
	if !from.Before(to) {
		return apperrors.ErrInvalidRange
	}
	return nil
}
