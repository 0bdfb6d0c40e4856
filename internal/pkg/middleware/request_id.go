package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/ticketing/internal/pkg/requestcontext"
)

// RequestIDMiddleware adds a unique request ID to each request, reusing the
// caller's X-Request-ID when present. The ID is also placed on the request
// context so logs written after the response still carry it.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.Set("request_id", requestID)
			c.SetRequest(c.Request().WithContext(
				requestcontext.WithRequestID(c.Request().Context(), requestID)))

			return next(c)
		}
	}
}
