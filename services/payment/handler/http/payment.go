package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/middleware"
	"github.com/piresc/ticketing/internal/pkg/models"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
	"github.com/piresc/ticketing/internal/pkg/requestcontext"
	"github.com/piresc/ticketing/internal/utils"
	"github.com/piresc/ticketing/services/payment"
)

// maxCallbackBody bounds how much of a callback body is read
const maxCallbackBody = 1 << 20

var errUnreadableBody = errors.New("unreadable callback body")

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentUC payment.PaymentUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(paymentUC payment.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// MpesaCallback receives an STK result from Safaricom. The path secret has
// already been checked by the route middleware.
func (h *PaymentHandler) MpesaCallback(c echo.Context) error {
	return h.reconcile(c, "callback")
}

// ReplayCallback lets an operator push a stored callback envelope through
// reconciliation again. Already settled payments come back as already processed.
func (h *PaymentHandler) ReplayCallback(c echo.Context) error {
	operator, _ := c.Get(middleware.ContextKeyUserID).(string)
	ctx := requestcontext.WithOperatorID(c.Request().Context(), operator)
	c.SetRequest(c.Request().WithContext(ctx))

	logger.InfoCtx(ctx, "Operator replaying M-Pesa callback",
		logger.String("client_ip", c.RealIP()))

	return h.reconcile(c, "replay")
}

func (h *PaymentHandler) reconcile(c echo.Context, source string) error {
	txn := nrpkg.FromEchoContext(c)

	callback, err := decodeCallback(c.Request().Body)
	if err != nil {
		logger.Warn("Rejected malformed M-Pesa callback",
			logger.String("source", source),
			logger.String("client_ip", c.RealIP()),
			logger.Err(err))
		return utils.BadRequestResponse(c, "Invalid callback payload")
	}

	checkoutRequestID := callback.Body.StkCallback.CheckoutRequestID
	middleware.SetCheckoutRequestID(c, checkoutRequestID)
	middleware.AddAttribute(c, "payment.callback_source", source)

	result, err := h.paymentUC.HandleMpesaCallback(c.Request().Context(), callback)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to reconcile M-Pesa callback",
				logger.String("checkout_request_id", checkoutRequestID),
				logger.String("source", source),
				logger.Err(err))
			nrpkg.NoticeTransactionError(txn, err)
			return utils.InternalServerErrorResponse(c, "Failed to process callback")
		}
		return utils.ErrorResponseHandler(c, status, err.Error())
	}

	nrpkg.AddTransactionAttribute(txn, "payment.outcome", string(result.Outcome))
	return utils.SuccessResponse(c, http.StatusOK, outcomeMessage(result.Outcome), result)
}

// GetPaymentStatus returns the current state of a payment for checkout polling
func (h *PaymentHandler) GetPaymentStatus(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)

	checkoutRequestID := strings.TrimSpace(c.Param("checkoutRequestId"))
	if checkoutRequestID == "" {
		return utils.BadRequestResponse(c, "Checkout request ID is required")
	}
	middleware.SetCheckoutRequestID(c, checkoutRequestID)

	view, err := h.paymentUC.GetPaymentStatus(c.Request().Context(), checkoutRequestID)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			return utils.NotFoundResponse(c, "Payment not found")
		}
		logger.Error("Failed to load payment status",
			logger.String("checkout_request_id", checkoutRequestID),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to load payment status")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment status retrieved successfully", view)
}

func decodeCallback(body io.Reader) (*models.MpesaCallback, error) {
	if body == nil {
		return nil, errUnreadableBody
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxCallbackBody))
	if err != nil {
		return nil, errUnreadableBody
	}

	var callback models.MpesaCallback
	if err := json.Unmarshal(raw, &callback); err != nil {
		return nil, err
	}
	callback.Raw = raw
	if strings.TrimSpace(callback.Body.StkCallback.CheckoutRequestID) == "" {
		return nil, payment.ErrInvalidCallback
	}
	return &callback, nil
}

// errorStatus maps reconciliation errors to HTTP status codes. Anything
// unrecognised is a 500 so the provider delivers the callback again.
func errorStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, payment.ErrInvalidCallback):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func outcomeMessage(outcome models.CallbackOutcome) string {
	switch outcome {
	case models.OutcomeAlreadyProcessed:
		return "Callback already processed"
	case models.OutcomeNotFound:
		return "Callback acknowledged, no matching transaction"
	default:
		return "Callback processed successfully"
	}
}
