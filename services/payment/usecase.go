package payment

import (
	"context"

	"github.com/piresc/ticketing/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/ticketing/services/payment PaymentUC

// PaymentUC reconciles M-Pesa STK callbacks against orders
type PaymentUC interface {
	// HandleMpesaCallback applies one callback delivery. Duplicate and unknown
	// deliveries are acknowledged through the result outcome, not an error.
	HandleMpesaCallback(ctx context.Context, callback *models.MpesaCallback) (*models.CallbackResult, error)

	// GetPaymentStatus returns the polling view of a payment, or ErrPaymentNotFound
	GetPaymentStatus(ctx context.Context, checkoutRequestID string) (*models.PaymentStatusView, error)
}
