package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/models"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
	"github.com/piresc/ticketing/internal/utils"
	"github.com/piresc/ticketing/services/payment"
	"go.uber.org/zap"
)

const maxFailReasonLength = 255

// errAlreadySettled rolls back the unit when the gate finds a terminal record
var errAlreadySettled = errors.New("payment already settled")

// settlement is what one committed callback changed
type settlement struct {
	txn        *models.Transaction
	kind       models.OrderKind
	order      *models.Order
	merch      *models.MerchOrder
	tickets    []*models.Ticket
	status     models.TransactionStatus
	receipt    models.PaymentReceipt
	failReason string
}

// HandleMpesaCallback settles the transaction a callback refers to
func (uc *PaymentUC) HandleMpesaCallback(ctx context.Context, callback *models.MpesaCallback) (*models.CallbackResult, error) {
	if callback == nil {
		return nil, fmt.Errorf("%w: empty callback", payment.ErrInvalidCallback)
	}

	stk := callback.Body.StkCallback
	checkoutID := strings.TrimSpace(stk.CheckoutRequestID)
	if checkoutID == "" {
		return nil, fmt.Errorf("%w: missing CheckoutRequestID", payment.ErrInvalidCallback)
	}

	nrTxn := nrpkg.FromContext(ctx)
	nrpkg.AddTransactionAttribute(nrTxn, "payment.result_code", stk.ResultCode)
	log := uc.log.ForContext(ctx).With(
		logger.String("checkout_request_id", checkoutID),
		logger.Int("result_code", stk.ResultCode),
	)

	matches, err := uc.repo.FindTransactionsByCheckoutID(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction: %w", err)
	}

	result := &models.CallbackResult{CheckoutRequestID: checkoutID}

	if len(matches) == 0 {
		log.Warn("Acknowledging callback for unknown checkout request")
		result.Outcome = models.OutcomeNotFound
		return result, nil
	}
	if len(matches) > 1 {
		log.Warn("Checkout request id matches several transactions, settling the oldest",
			logger.Int("matches", len(matches)),
			logger.String("transaction_id", matches[0].ID))
	}

	txnID := matches[0].ID
	result.TransactionID = txnID
	log = log.With(logger.String("transaction_id", txnID))

	var s *settlement
	err = nrpkg.WithSegment(ctx, "payment.settle", func() error {
		return uc.repo.WithinTx(ctx, func(ctx context.Context, tx payment.PaymentTx) error {
			var err error
			s, err = uc.settle(ctx, tx, txnID, stk, callback.Raw, log)
			return err
		})
	})
	if errors.Is(err, errAlreadySettled) {
		log.Info("Callback already processed")
		result.Outcome = models.OutcomeAlreadyProcessed
		return result, nil
	}
	if err != nil {
		log.Error("Failed to settle payment", logger.Err(err))
		nrpkg.NoticeTransactionError(nrTxn, err)
		return nil, fmt.Errorf("failed to settle transaction %s: %w", txnID, err)
	}

	switch {
	case s.kind == models.OrderKindMissing && s.status == models.TransactionCompleted:
		log.Error("Payment received for an order that does not exist",
			logger.String("order_id", s.txn.OrderID),
			logger.String("receipt_number", s.receipt.ReceiptNumber),
			logger.String("amount", s.txn.Amount.String()),
			logger.Bool("manual_reconciliation", true))
	case s.kind == models.OrderKindMissing:
		log.Warn("Failed payment references an order that does not exist",
			logger.String("order_id", s.txn.OrderID))
	default:
		log.Info("Payment settled",
			logger.String("order_id", s.txn.OrderID),
			logger.String("order_kind", string(s.kind)),
			logger.String("status", string(s.status)),
			logger.String("payer_phone", utils.MaskPhoneNumber(s.receipt.PhoneNumber)),
			logger.Int("tickets_issued", len(s.tickets)))
	}

	result.Outcome = models.OutcomeProcessed
	result.Status = s.status
	result.OrderKind = s.kind
	result.TicketsIssued = len(s.tickets)

	uc.dispatchSideEffects(ctx, s)

	return result, nil
}

// settle is the body of the atomic unit. It may run more than once when the
// database asks for a retry, so it keeps no state outside its return value.
func (uc *PaymentUC) settle(
	ctx context.Context,
	tx payment.PaymentTx,
	txnID string,
	stk models.StkCallback,
	raw json.RawMessage,
	log *zap.Logger,
) (*settlement, error) {
	txn, err := tx.GetTransactionForUpdate(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, fmt.Errorf("transaction %s vanished before settlement", txnID)
	}
	if txn.Status.IsTerminal() {
		return nil, errAlreadySettled
	}

	s := &settlement{txn: txn, kind: models.OrderKindMissing}

	order, err := tx.GetOrderForUpdate(ctx, txn.OrderID)
	if err != nil {
		return nil, err
	}
	if order != nil {
		if order.Status.IsTerminal() {
			logOwnerAlreadySettled(log, stk, txn.OrderID, string(order.Status))
			return nil, errAlreadySettled
		}
		s.kind = models.OrderKindTicket
		s.order = order
	} else {
		merch, err := tx.GetMerchOrderForUpdate(ctx, txn.OrderID)
		if err != nil {
			return nil, err
		}
		if merch != nil {
			if merch.Status != models.MerchOrderPending {
				logOwnerAlreadySettled(log, stk, txn.OrderID, string(merch.Status))
				return nil, errAlreadySettled
			}
			s.kind = models.OrderKindMerch
			s.merch = merch
		}
	}

	if stk.Succeeded() {
		err = uc.applySuccess(ctx, tx, s, stk, log)
	} else {
		err = uc.applyFailure(ctx, tx, s, stk, raw)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// logOwnerAlreadySettled reports a callback whose order was settled by another
// transaction. A successful one means the buyer was charged twice.
func logOwnerAlreadySettled(log *zap.Logger, stk models.StkCallback, orderID, orderStatus string) {
	if stk.Succeeded() {
		log.Error("Payment received for an order settled by another transaction",
			logger.String("order_id", orderID),
			logger.String("order_status", orderStatus),
			logger.Bool("manual_reconciliation", true))
		return
	}
	log.Warn("Order already settled by another transaction",
		logger.String("order_id", orderID),
		logger.String("order_status", orderStatus))
}

func (uc *PaymentUC) applySuccess(ctx context.Context, tx payment.PaymentTx, s *settlement, stk models.StkCallback, log *zap.Logger) error {
	receipt := extractReceipt(stk, log)
	if receipt.Amount != nil && !receipt.Amount.Equal(s.txn.Amount) {
		log.Warn("Paid amount differs from transaction amount",
			logger.String("paid", receipt.Amount.String()),
			logger.String("expected", s.txn.Amount.String()))
	}

	if err := tx.CompleteTransaction(ctx, s.txn.ID, receipt); err != nil {
		return err
	}
	s.status = models.TransactionCompleted
	s.receipt = receipt

	switch s.kind {
	case models.OrderKindTicket:
		return uc.completeOrder(ctx, tx, s, log)
	case models.OrderKindMerch:
		return uc.completeMerchOrder(ctx, tx, s)
	}
	// The money was received, so the completed transaction is kept even
	// though there is nothing to fulfil.
	return nil
}

func (uc *PaymentUC) completeOrder(ctx context.Context, tx payment.PaymentTx, s *settlement, log *zap.Logger) error {
	order := s.order

	if err := tx.UpdateOrderStatus(ctx, order.ID, models.OrderCompleted); err != nil {
		return err
	}

	if uc.issuesTickets(order) {
		tickets, err := uc.issueTickets(order)
		if err != nil {
			return fmt.Errorf("failed to issue tickets for order %s: %w", order.ID, err)
		}
		if err := tx.CreateTickets(ctx, tickets); err != nil {
			return err
		}
		s.tickets = tickets
	}

	if order.PromocodeID != nil {
		found, err := tx.RecordPromocodeUsage(ctx, *order.PromocodeID, order.Total)
		if err != nil {
			return err
		}
		if !found {
			log.Warn("Promocode on order no longer exists", logger.String("promocode_id", *order.PromocodeID))
		}
	}

	if order.TrackingLinkID != nil {
		found, err := tx.IncrementTrackingLinkPurchases(ctx, *order.TrackingLinkID, order.PromocodeID)
		if err != nil {
			return err
		}
		if !found {
			log.Warn("Tracking link on order no longer exists", logger.String("tracking_link_id", *order.TrackingLinkID))
		}
	}

	return nil
}

// issuesTickets reports whether a completed order gets admission tickets.
// Booking-fee reservations and unticketed listing types get none.
func (uc *PaymentUC) issuesTickets(order *models.Order) bool {
	return order.PaymentType == models.PaymentFull && uc.ticketed[order.ListingType]
}

func (uc *PaymentUC) issueTickets(order *models.Order) ([]*models.Ticket, error) {
	tickets := make([]*models.Ticket, 0, order.TicketCount())
	for _, line := range order.Tickets {
		for i := 0; i < line.Quantity; i++ {
			ticket, err := uc.issuer.Issue(order.ID, order.ListingID, line.Name, order.Buyer)
			if err != nil {
				return nil, err
			}
			tickets = append(tickets, ticket)
		}
	}
	return tickets, nil
}

func (uc *PaymentUC) completeMerchOrder(ctx context.Context, tx payment.PaymentTx, s *settlement) error {
	merch := s.merch

	quantities := make(map[string]int)
	for _, item := range merch.Items {
		if item.Quantity > 0 {
			quantities[item.ProductID] += item.Quantity
		}
	}

	// Lock products in a fixed order so concurrent settlements cannot deadlock
	productIDs := make([]string, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	for _, id := range productIDs {
		product, err := tx.GetProductForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %s: %w", id, payment.ErrProductNotFound)
		}
		if product.Stock < quantities[id] {
			return fmt.Errorf("product %s has %d left, order %s needs %d: %w",
				id, product.Stock, merch.ID, quantities[id], payment.ErrInsufficientStock)
		}
	}

	for _, id := range productIDs {
		if err := tx.DecrementProductStock(ctx, id, quantities[id]); err != nil {
			return err
		}
	}

	return tx.UpdateMerchOrderStatus(ctx, merch.ID, models.MerchOrderAwaitingPickup)
}

func (uc *PaymentUC) applyFailure(ctx context.Context, tx payment.PaymentTx, s *settlement, stk models.StkCallback, raw json.RawMessage) error {
	reason := utils.Truncate(utils.SanitizeString(stk.ResultDesc), maxFailReasonLength)
	if reason == "" {
		reason = fmt.Sprintf("M-Pesa result code %d", stk.ResultCode)
	}

	failure := models.PaymentFailure{
		MerchantRequestID: stk.MerchantRequestID,
		Reason:            reason,
		RawCallback:       raw,
	}
	if err := tx.FailTransaction(ctx, s.txn.ID, failure); err != nil {
		return err
	}
	s.status = models.TransactionFailed
	s.failReason = reason

	switch s.kind {
	case models.OrderKindTicket:
		return tx.UpdateOrderStatus(ctx, s.order.ID, models.OrderFailed)
	case models.OrderKindMerch:
		// Stock is only taken on success, so there is nothing to give back
		return tx.UpdateMerchOrderStatus(ctx, s.merch.ID, models.MerchOrderFailed)
	}
	return nil
}
