package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "log-owl.com/log-owl/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logging())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/health", h.Health)
	e.GET("/app/recovery", h.Recovery)

	tasks := e.Group("/tasks")
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/service", h.GetServiceTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
	tasks.POST("/:id/complete", h.CompleteTask)
	tasks.POST("/:id/reopen", h.ReopenTask)
	tasks.GET("/:id/time-entries", h.ListTaskTimeEntries)
	tasks.POST("/:id/timer/start", h.StartTimer)
	tasks.GET("/:id/sessions", h.ListTaskSessions)
	tasks.POST("/:id/sessions", h.OpenSession)
	tasks.POST("/:id/sessions/close-open", h.CloseTaskSessions)

	entries := e.Group("/time-entries")
	entries.GET("", h.ListTimeEntries)
	entries.POST("", h.CreateTimeEntry)
	entries.GET("/:id", h.GetTimeEntry)
	entries.PUT("/:id", h.UpdateTimeEntry)
	entries.DELETE("/:id", h.DeleteTimeEntry)
	entries.POST("/:id/stop", h.StopTimer)

	sessions := e.Group("/sessions")
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.POST("/:id/close", h.CloseSession)
	sessions.POST("/:id/touch", h.TouchSession)
	sessions.POST("/:id/convert", h.ConvertSession)

	e.GET("/reports", h.Report)

	settings := e.Group("/settings")
	settings.GET("", h.ListSettings)
	settings.GET("/:key", h.GetSetting)
	settings.PUT("/:key", h.PutSetting)
	settings.DELETE("/:key", h.DeleteSetting)
}
