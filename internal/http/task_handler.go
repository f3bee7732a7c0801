package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "log-owl.com/log-owl/internal/data_models"
	"log-owl.com/log-owl/internal/http/validators"
	"log-owl.com/log-owl/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return fail(c, err)
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), req.Title, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.tasks.ListTasks(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetServiceTask(c echo.Context) error {
	task, err := h.tasks.EnsureServiceTask(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return fail(c, err)
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), id, services.TaskChanges{
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CompleteTask(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	task, err := h.tasks.CompleteTask(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ReopenTask(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	task, err := h.tasks.ReopenTask(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
