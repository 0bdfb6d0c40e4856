package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware creates request logging middleware for Echo.
// It logs the matched route pattern rather than the raw URL so that
// path parameters such as callback secrets never reach the logs.
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the error response so the status is final
				c.Error(err)
			}

			latency := time.Since(start)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			if txn != nil {
				txn.AddAttribute("request_id", requestID)
				txn.AddAttribute("response_time_ms", latency.Milliseconds())
				if err != nil {
					txn.NoticeError(err)
				}
			}

			logger.LogHTTPRequest(txn, c.Request().Method, route, c.RealIP(), requestID, c.Response().Status, latency, err)

			return nil
		}
	}
}
