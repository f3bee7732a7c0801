package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	RequestIDHeader            = echo.HeaderXRequestID
	RequestIDKey    contextKey = "request_id"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one, echoes it
// back and stores it on the request context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := req.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Response().Header().Set(RequestIDHeader, requestID)
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), RequestIDKey, requestID)))

			return next(c)
		}
	}
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
