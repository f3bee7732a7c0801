package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "log-owl.com/log-owl/internal/data_models"
	"log-owl.com/log-owl/internal/http/validators"
	model "log-owl.com/log-owl/pkg/models"
)

func (h *Handler) OpenSession(c echo.Context) error {
	taskID, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	session, err := h.sessions.OpenSession(c.Request().Context(), taskID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *Handler) ListTaskSessions(c echo.Context) error {
	taskID, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	ctx := c.Request().Context()

	if _, err := h.tasks.GetTask(ctx, taskID); err != nil {
		return fail(c, err)
	}
	sessions, err := h.sessions.ListByTask(ctx, taskID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (h *Handler) CloseTaskSessions(c echo.Context) error {
	taskID, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	closed, err := h.sessions.CloseOpenByTask(c.Request().Context(), taskID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"closed": closed})
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	session, err := h.sessions.GetSession(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// CloseSession closes at the body's closed_at, or now when the body is
// empty.
func (h *Handler) CloseSession(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CloseSessionRequest
	if c.Request().ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	ctx := c.Request().Context()

	var session *model.TaskSession
	if req.ClosedAt == nil {
		session, err = h.sessions.CloseSessionNow(ctx, id)
	} else {
		session, err = h.sessions.CloseSession(ctx, id, *req.ClosedAt)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

func (h *Handler) TouchSession(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	session, err := h.sessions.TouchSession(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// ConvertSession turns a closed session into a time entry. Converting an
// open session creates nothing and answers with converted=false.
func (h *Handler) ConvertSession(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	entry, err := h.sessions.ConvertByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if entry == nil {
		return c.JSON(http.StatusOK, echo.Map{"converted": false})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"converted":  true,
		"time_entry": entry,
	})
}

func (h *Handler) DeleteSession(c echo.Context) error {
	id, err := validators.ParseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.sessions.DeleteSession(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
