package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "log-owl.com/log-owl/internal/errors"
	middleware "log-owl.com/log-owl/internal/http/middlewares"
	"log-owl.com/log-owl/internal/logger"
	"log-owl.com/log-owl/internal/services"
)

type Handler struct {
	tasks       *services.TaskService
	timeEntries *services.TimeEntryService
	sessions    *services.SessionService
	reports     *services.ReportService
	settings    *services.SettingsService
	notice      *services.RecoveryNotice
}

type Services struct {
	Tasks       *services.TaskService
	TimeEntries *services.TimeEntryService
	Sessions    *services.SessionService
	Reports     *services.ReportService
	Settings    *services.SettingsService
	Notice      *services.RecoveryNotice
}

func NewHandler(s Services) *Handler {
	return &Handler{
		tasks:       s.Tasks,
		timeEntries: s.TimeEntries,
		sessions:    s.Sessions,
		reports:     s.Reports,
		settings:    s.Settings,
		notice:      s.Notice,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Recovery hands out the startup recovery result. Only the first caller
// sees closed ids.
func (h *Handler) Recovery(c echo.Context) error {
	return c.JSON(http.StatusOK, h.notice.Take())
}

// fail maps a service error to an HTTP error without leaking store detail.
func fail(c echo.Context, err error) error {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("HTTP: request failed", err,
			zap.String("request_id", middleware.GetRequestID(c.Request().Context())),
			zap.String("path", c.Path()))
	}
	return echo.NewHTTPError(status, apperrors.PublicMessage(err))
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fail(c, apperrors.ErrInvalidJSON)
	}
	return nil
}
