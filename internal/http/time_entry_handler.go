package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "log-owl.com/log-owl/internal/data_models"
	"log-owl.com/log-owl/internal/http/validators"
	"log-owl.com/log-owl/internal/services"
	model "log-owl.com/log-owl/pkg/models"
)

func (h *Handler) ListTimeEntries(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		entries []model.TimeEntry
		err     error
	)
	if c.QueryParam("open") == "true" {
		entries, err = h.timeEntries.ListOpen(ctx)
	} else {
		entries, err = h.timeEntries.ListTimeEntries(ctx)
	}
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(entries),
		"time_entries": entries,
	})
}

func (h *Handler) ListTaskTimeEntries(c echo.Context) error {
	taskID, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	ctx := c.Request().Context()

	if _, err := h.tasks.GetTask(ctx, taskID); err != nil {
		return fail(c, err)
	}
	entries, err := h.timeEntries.ListByTask(ctx, taskID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(entries),
		"time_entries": entries,
	})
}

func (h *Handler) CreateTimeEntry(c echo.Context) error {
	var req dto.CreateTimeEntryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTimeEntryRequest(&req); err != nil {
		return fail(c, err)
	}

	entry, err := h.timeEntries.CreateTimeEntry(c.Request().Context(), services.NewTimeEntry{
		TaskID:    req.TaskID,
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
		Source:    req.Source,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) GetTimeEntry(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	entry, err := h.timeEntries.GetTimeEntry(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) UpdateTimeEntry(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateTimeEntryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateTimeEntryRequest(&req); err != nil {
		return fail(c, err)
	}

	entry, err := h.timeEntries.UpdateTimeEntry(c.Request().Context(), id, services.TimeEntryChanges{
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) DeleteTimeEntry(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.timeEntries.DeleteTimeEntry(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) StartTimer(c echo.Context) error {
	taskID, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	entry, err := h.timeEntries.StartTimer(c.Request().Context(), taskID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) StopTimer(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	entry, err := h.timeEntries.StopTimer(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}
