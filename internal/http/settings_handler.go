package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "log-owl.com/log-owl/internal/data_models"
)

func (h *Handler) ListSettings(c echo.Context) error {
	settings, err := h.settings.ListSettings(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(settings),
		"settings": settings,
	})
}

func (h *Handler) GetSetting(c echo.Context) error {
	setting, err := h.settings.GetSetting(c.Request().Context(), c.Param("key"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *Handler) PutSetting(c echo.Context) error {
	var req dto.SetSettingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	setting, err := h.settings.SetSetting(c.Request().Context(), c.Param("key"), req.Value)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *Handler) DeleteSetting(c echo.Context) error {
	if err := h.settings.DeleteSetting(c.Request().Context(), c.Param("key")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
