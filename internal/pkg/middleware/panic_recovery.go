package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/ticketing/internal/pkg/logger"
)

// PanicRecoveryWithZapMiddleware recovers from handler panics, logs them with a
// stack trace and answers 500 so the payment provider redelivers the callback.
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		panic("PanicRecoveryWithZapMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r, zapLogger)
					err = nil
				}
			}()

			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}, zapLogger *logger.ZapLogger) {
	stackTrace := string(debug.Stack())
	requestID := getRequestID(c)
	panicType := fmt.Sprintf("%T", r)

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.NoticeError(newrelic.Error{
			Message: fmt.Sprintf("Panic recovered: %v", r),
			Class:   "PanicError",
			Attributes: map[string]interface{}{
				"panic.type":   panicType,
				"http.method":  c.Request().Method,
				"http.route":   c.Path(),
				"request_id":   requestID,
				"stack_trace":  stackTrace,
				"http.client":  c.RealIP(),
				"panic.value":  fmt.Sprintf("%v", r),
				"panic.source": "echo_handler",
			},
		})
	}

	zapLogger.WithNewRelicContext(txn).Error("Panic recovered during request processing",
		logger.Any("panic_value", r),
		logger.String("panic_type", panicType),
		logger.String("stack_trace", stackTrace),
		logger.String("method", c.Request().Method),
		logger.String("route", c.Path()),
		logger.String("client_ip", c.RealIP()),
		logger.String("request_id", requestID),
	)

	if c.Response().Committed {
		return
	}

	response := map[string]interface{}{
		"success": false,
		"error":   "Internal Server Error",
		"code":    http.StatusInternalServerError,
	}
	if requestID != "" {
		response["request_id"] = requestID
	}
	if err := c.JSON(http.StatusInternalServerError, response); err != nil {
		_ = c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}

func getRequestID(c echo.Context) string {
	if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
		return requestID
	}
	if requestID := c.Request().Header.Get(echo.HeaderXRequestID); requestID != "" {
		return requestID
	}
	if requestID, ok := c.Get("request_id").(string); ok {
		return requestID
	}
	return ""
}
