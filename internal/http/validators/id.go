package validators

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "log-owl.com/log-owl/internal/errors"
)

// ParseID reads a positive integer path parameter.
func ParseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID
	}
	return id, nil
}
