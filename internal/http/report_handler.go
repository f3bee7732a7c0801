package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "log-owl.com/log-owl/internal/data_models"
	"log-owl.com/log-owl/internal/http/validators"
)

func (h *Handler) Report(c echo.Context) error {
	q := dto.ReportQuery{
		From: c.QueryParam("from"),
		To:   c.QueryParam("to"),
	}
	if err := validators.ValidateReportQuery(&q); err != nil {
		return fail(c, err)
	}

	report, err := h.reports.BuildReport(c.Request().Context(), q.From, q.To)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
