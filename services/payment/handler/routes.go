package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/piresc/ticketing/internal/pkg/middleware"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/services/payment"
	httpHandler "github.com/piresc/ticketing/services/payment/handler/http"
)

// Handler combines all handlers for the payment service
type Handler struct {
	paymentHTTP *httpHandler.PaymentHandler
	cfg         *models.Config
	redisClient *redis.Client
}

// NewHandler creates a new combined handler. redisClient backs the status
// poll rate limiter and may be nil.
func NewHandler(
	paymentUC payment.PaymentUC,
	cfg *models.Config,
	redisClient *redis.Client,
) *Handler {
	return &Handler{
		paymentHTTP: httpHandler.NewPaymentHandler(paymentUC),
		cfg:         cfg,
		redisClient: redisClient,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	// Safaricom callback, authenticated by the secret in the URL path
	payments := api.Group("/payments")
	payments.POST("/mpesa/callback/:"+middleware.CallbackSecretParam,
		h.paymentHTTP.MpesaCallback,
		middleware.ValidateCallbackSecret(h.cfg.Mpesa.CallbackSecret))

	// Checkout page polling
	payments.GET("/:checkoutRequestId/status",
		h.paymentHTTP.GetPaymentStatus,
		middleware.IPRateLimiter(h.cfg.Payment.StatusRateLimit, time.Minute, h.redisClient))

	// Operator tools
	admin := api.Group("/admin",
		middleware.JWTAuthMiddleware(h.cfg.JWT),
		middleware.RequireRole(h.cfg.JWT.AdminRole))
	admin.POST("/payments/callbacks/replay", h.paymentHTTP.ReplayCallback)
}
