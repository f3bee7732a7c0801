package validators

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "log-owl.com/log-owl/internal/data_models"
	apperrors "log-owl.com/log-owl/internal/errors"
)

func TestParseID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		raw  string
		want int64
		err  error
	}{
		{raw: "42", want: 42},
		{raw: "0", err: apperrors.ErrInvalidID},
		{raw: "-3", err: apperrors.ErrInvalidID},
		{raw: "abc", err: apperrors.ErrInvalidID},
		{raw: "", err: apperrors.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues(tt.raw)

			id, err := ParseID(c, "id")
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestValidateCreateTaskRequest(t *testing.T) {
	assert.NoError(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "Plan"}))
	assert.ErrorIs(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "  "}), apperrors.ErrTitleRequired)

	empty := ""
	assert.ErrorIs(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Title: &empty}), apperrors.ErrTitleRequired)
	assert.NoError(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{}))
}

func TestValidateCreateTimeEntryRequest(t *testing.T) {
	end := "2025-03-10T08:00:00Z"
	bad := "later"

	assert.NoError(t, ValidateCreateTimeEntryRequest(&dto.CreateTimeEntryRequest{TaskID: 1, StartedAt: "2025-03-10T07:00:00Z", EndedAt: &end}))
	assert.ErrorIs(t, ValidateCreateTimeEntryRequest(&dto.CreateTimeEntryRequest{StartedAt: "2025-03-10T07:00:00Z"}), apperrors.ErrInvalidID)
	assert.ErrorIs(t, ValidateCreateTimeEntryRequest(&dto.CreateTimeEntryRequest{TaskID: 1, StartedAt: "now"}), apperrors.ErrInvalidTimestamp)
	assert.ErrorIs(t, ValidateCreateTimeEntryRequest(&dto.CreateTimeEntryRequest{TaskID: 1, StartedAt: "2025-03-10T07:00:00Z", EndedAt: &bad}), apperrors.ErrInvalidTimestamp)
	assert.ErrorIs(t, ValidateCreateTimeEntryRequest(&dto.CreateTimeEntryRequest{TaskID: 1, StartedAt: "2025-03-10T09:00:00Z", EndedAt: &end}), apperrors.ErrInvalidRange)
}

func TestValidateReportQuery(t *testing.T) {
	assert.NoError(t, ValidateReportQuery(&dto.ReportQuery{From: "2025-03-10T00:00:00Z", To: "2025-03-11T00:00:00Z"}))
	assert.ErrorIs(t, ValidateReportQuery(&dto.ReportQuery{From: "2025-03-11T00:00:00Z", To: "2025-03-10T00:00:00Z"}), apperrors.ErrInvalidRange)
	assert.ErrorIs(t, ValidateReportQuery(&dto.ReportQuery{To: "2025-03-10T00:00:00Z"}), apperrors.ErrInvalidTimestamp)
}
