package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/utils"
)

// CallbackSecretParam is the route parameter carrying the shared callback secret
const CallbackSecretParam = "secret"

// ValidateCallbackSecret rejects provider callbacks whose URL path secret does
// not match the configured one. It runs before the body is read, so a rejected
// request never touches stored state.
func ValidateCallbackSecret(expected string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			given := c.Param(CallbackSecretParam)

			// An unset secret rejects everything rather than accepting everything
			if expected == "" || given == "" ||
				subtle.ConstantTimeCompare([]byte(given), []byte(expected)) != 1 {
				logger.Warn("Rejected callback with invalid secret",
					logger.String("client_ip", c.RealIP()),
					logger.String("route", c.Path()))
				return utils.ForbiddenResponse(c, "Invalid callback secret")
			}

			return next(c)
		}
	}
}
