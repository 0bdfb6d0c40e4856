package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// AddAttribute adds a custom attribute to the current transaction
func AddAttribute(c echo.Context, key string, value interface{}) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute(key, value)
	}
}

// SetCheckoutRequestID tags the current transaction with the STK checkout request ID
func SetCheckoutRequestID(c echo.Context, checkoutRequestID string) {
	AddAttribute(c, "payment.checkout_request_id", checkoutRequestID)
}
