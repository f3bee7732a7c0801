package validators

import (
	dto "log-owl.com/log-owl/internal/data_models"
	apperrors "log-owl.com/log-owl/internal/errors"
	"log-owl.com/log-owl/pkg/timestamp"
)

func ValidateCreateTimeEntryRequest(r *dto.CreateTimeEntryRequest) error {
	if r.TaskID <= 0 {
		return apperrors.ErrInvalidID
	}
	start, err := timestamp.Parse(r.StartedAt)
	if err != nil {
		return apperrors.ErrInvalidTimestamp
	}
	if r.EndedAt == nil {
		return nil
	}
	end, err := timestamp.Parse(*r.EndedAt)
	if err != nil {
		return apperrors.ErrInvalidTimestamp
	}
	if end.Before(start) {
		return apperrors.ErrInvalidRange
	}
	return nil
}

func ValidateUpdateTimeEntryRequest(r *dto.UpdateTimeEntryRequest) error {
	for _, ts := range []*string{r.StartedAt, r.EndedAt} {
		if ts == nil {
			continue
		}
		if _, err := timestamp.Parse(*ts); err != nil {
			return apperrors.ErrInvalidTimestamp
		}
	}
	return nil
}
