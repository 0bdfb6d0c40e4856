package usecase

import (
	"context"

	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/internal/utils"
)

// dispatchSideEffects runs everything that follows a committed settlement in
// the background. The callback is acknowledged without waiting, and none of
// these failures can undo the payment. During shutdown they run inline.
func (uc *PaymentUC) dispatchSideEffects(ctx context.Context, s *settlement) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.sideEffectTimeout)

	if !uc.track() {
		defer cancel()
		uc.log.ForContext(ctx).Warn("Shutting down, running side effects inline",
			logger.String("transaction_id", s.txn.ID))
		uc.runSideEffects(ctx, s)
		return
	}

	go func() {
		defer uc.pending.Done()
		defer cancel()
		uc.runSideEffects(ctx, s)
	}()
}

func (uc *PaymentUC) runSideEffects(ctx context.Context, s *settlement) {
	settled := uc.settledTransaction(s)
	uc.cacheStatus(ctx, settled)
	uc.publishEvent(ctx, s, settled)
	uc.sendConfirmation(ctx, s)
}

// settledTransaction is the transaction as it was committed
func (uc *PaymentUC) settledTransaction(s *settlement) *models.Transaction {
	txn := *s.txn
	txn.Status = s.status
	txn.UpdatedAt = uc.now()
	switch s.status {
	case models.TransactionCompleted:
		if s.receipt.ReceiptNumber != "" {
			receipt := s.receipt.ReceiptNumber
			txn.MpesaReceiptNumber = &receipt
		}
		txn.FailReason = nil
		completedAt := txn.UpdatedAt
		txn.CompletedAt = &completedAt
	case models.TransactionFailed:
		reason := s.failReason
		txn.FailReason = &reason
		txn.RetryCount++
	}
	return &txn
}

func (uc *PaymentUC) cacheStatus(ctx context.Context, txn *models.Transaction) {
	view := models.NewPaymentStatusView(txn)
	if err := uc.cache.SetPaymentStatus(ctx, view, uc.statusCacheTTL); err != nil {
		uc.log.ForContext(ctx).Warn("Failed to cache payment status",
			logger.String("checkout_request_id", txn.CheckoutRequestID),
			logger.Err(err))
	}
}

func (uc *PaymentUC) publishEvent(ctx context.Context, s *settlement, txn *models.Transaction) {
	event := &models.PaymentEvent{
		TransactionID:     txn.ID,
		CheckoutRequestID: txn.CheckoutRequestID,
		OrderID:           txn.OrderID,
		OrderKind:         s.kind,
		Status:            txn.Status,
		Amount:            txn.Amount,
		ReceiptNumber:     s.receipt.ReceiptNumber,
		FailReason:        s.failReason,
		TicketsIssued:     len(s.tickets),
		OccurredAt:        txn.UpdatedAt,
	}

	var err error
	if txn.Status == models.TransactionCompleted {
		err = uc.gw.PublishPaymentCompleted(ctx, event)
	} else {
		err = uc.gw.PublishPaymentFailed(ctx, event)
	}
	if err != nil {
		uc.log.ForContext(ctx).Warn("Failed to publish payment event",
			logger.String("transaction_id", txn.ID),
			logger.String("status", string(txn.Status)),
			logger.Err(err))
	}
}

// sendConfirmation emails the buyer after a successful payment
func (uc *PaymentUC) sendConfirmation(ctx context.Context, s *settlement) {
	if s.status != models.TransactionCompleted || s.kind == models.OrderKindMissing {
		return
	}

	buyer := s.buyer()
	if !utils.IsValidEmail(buyer.Email) {
		uc.log.ForContext(ctx).Warn("Skipping confirmation email, buyer email is invalid",
			logger.String("order_id", s.txn.OrderID),
			logger.String("buyer_email", utils.MaskEmail(buyer.Email)))
		return
	}

	var err error
	if s.kind == models.OrderKindTicket {
		err = uc.gw.SendTicketEmail(ctx, &models.TicketEmail{
			BuyerEmail:  buyer.Email,
			BuyerName:   buyer.Name,
			OrderID:     s.order.ID,
			ListingName: s.order.ListingName,
			Tickets:     summarizeTickets(s.tickets),
		})
	} else {
		err = uc.gw.SendMerchPickupEmail(ctx, &models.MerchPickupEmail{
			BuyerEmail: buyer.Email,
			BuyerName:  buyer.Name,
			OrderID:    s.merch.ID,
			Items:      s.merch.Items,
			Total:      s.merch.Total,
		})
	}
	if err != nil {
		uc.log.ForContext(ctx).Error("Failed to send confirmation email",
			logger.String("order_id", s.txn.OrderID),
			logger.String("buyer_email", utils.MaskEmail(buyer.Email)),
			logger.Err(err))
	}
}

func (s *settlement) buyer() models.Buyer {
	if s.order != nil {
		return s.order.Buyer
	}
	if s.merch != nil {
		return s.merch.Buyer
	}
	return models.Buyer{}
}

// summarizeTickets groups issued codes by ticket type, keeping issue order
func summarizeTickets(tickets []*models.Ticket) []models.TicketSummary {
	var summaries []models.TicketSummary
	index := make(map[string]int)
	for _, t := range tickets {
		i, ok := index[t.TicketType]
		if !ok {
			i = len(summaries)
			index[t.TicketType] = i
			summaries = append(summaries, models.TicketSummary{TicketType: t.TicketType})
		}
		summaries[i].Quantity++
		summaries[i].Codes = append(summaries[i].Codes, t.Code)
	}
	return summaries
}
