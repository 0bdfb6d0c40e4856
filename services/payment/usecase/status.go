package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/services/payment"
)

// GetPaymentStatus returns the latest known status of a payment, reading the
// cache before the database
func (uc *PaymentUC) GetPaymentStatus(ctx context.Context, checkoutRequestID string) (*models.PaymentStatusView, error) {
	checkoutRequestID = strings.TrimSpace(checkoutRequestID)
	if checkoutRequestID == "" {
		return nil, payment.ErrPaymentNotFound
	}

	view, err := uc.cache.GetPaymentStatus(ctx, checkoutRequestID)
	if err != nil {
		uc.log.ForContext(ctx).Warn("Payment status cache unavailable, reading database",
			logger.String("checkout_request_id", checkoutRequestID),
			logger.Err(err))
	} else if view != nil {
		return view, nil
	}

	matches, err := uc.repo.FindTransactionsByCheckoutID(ctx, checkoutRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up payment status: %w", err)
	}
	if len(matches) == 0 {
		return nil, payment.ErrPaymentNotFound
	}

	view = models.NewPaymentStatusView(matches[0])

	// Pending rows change underneath us, so only settled ones are cached
	if view.Status.IsTerminal() {
		if err := uc.cache.SetPaymentStatus(ctx, view, uc.statusCacheTTL); err != nil {
			uc.log.ForContext(ctx).Warn("Failed to cache payment status",
				logger.String("checkout_request_id", checkoutRequestID),
				logger.Err(err))
		}
	}

	return view, nil
}
