package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/piresc/ticketing/internal/pkg/database"
	"github.com/piresc/ticketing/internal/pkg/models"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
	"github.com/shopspring/decimal"
)

// GetOrderForUpdate locks and returns a ticket order
func (t *paymentTx) GetOrderForUpdate(ctx context.Context, id string) (*models.Order, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "orders", "SELECT FOR UPDATE")
	defer seg.End()

	query := `
		SELECT id, buyer_name, buyer_email, buyer_phone,
			listing_id, listing_type, listing_name, payment_type,
			tickets, subtotal, total, status, promocode_id, tracking_link_id,
			created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`

	var order models.Order
	if err := t.tx.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock order %s: %w", id, err)
	}
	return &order, nil
}

// GetMerchOrderForUpdate locks and returns a merchandise order
func (t *paymentTx) GetMerchOrderForUpdate(ctx context.Context, id string) (*models.MerchOrder, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "merch_orders", "SELECT FOR UPDATE")
	defer seg.End()

	query := `
		SELECT id, buyer_name, buyer_email, buyer_phone, items, total, status, created_at, updated_at
		FROM merch_orders
		WHERE id = $1
		FOR UPDATE`

	var order models.MerchOrder
	if err := t.tx.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock merch order %s: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus sets the status of a ticket order
func (t *paymentTx) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	seg := nrpkg.StartDatastoreSegment(ctx, "orders", "UPDATE")
	defer seg.End()

	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := execOne(ctx, t.tx, query, id, status); err != nil {
		return fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return nil
}

// UpdateMerchOrderStatus sets the status of a merchandise order
func (t *paymentTx) UpdateMerchOrderStatus(ctx context.Context, id string, status models.MerchOrderStatus) error {
	seg := nrpkg.StartDatastoreSegment(ctx, "merch_orders", "UPDATE")
	defer seg.End()

	query := `UPDATE merch_orders SET status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := execOne(ctx, t.tx, query, id, status); err != nil {
		return fmt.Errorf("failed to update merch order %s: %w", id, err)
	}
	return nil
}

// CreateTickets inserts issued tickets
func (t *paymentTx) CreateTickets(ctx context.Context, tickets []*models.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	seg := nrpkg.StartDatastoreSegment(ctx, "tickets", "INSERT")
	defer seg.End()

	query := `
		INSERT INTO tickets (
			id, order_id, listing_id, ticket_type, code, status,
			issuing_mode, buyer_name, buyer_email, created_at
		) VALUES (
			:id, :order_id, :listing_id, :ticket_type, :code, :status,
			:issuing_mode, :buyer_name, :buyer_email, :created_at
		)`

	for _, ticket := range tickets {
		if _, err := t.tx.NamedExecContext(ctx, query, ticket); err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("ticket code %s already issued: %w", ticket.Code, err)
			}
			return fmt.Errorf("failed to insert ticket for order %s: %w", ticket.OrderID, err)
		}
	}
	return nil
}

// RecordPromocodeUsage counts one redemption and adds the order revenue
func (t *paymentTx) RecordPromocodeUsage(ctx context.Context, promocodeID string, revenue decimal.Decimal) (bool, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "promocodes", "UPDATE")
	defer seg.End()

	query := `
		UPDATE promocodes SET
			usage_count = usage_count + 1,
			revenue = revenue + $2,
			updated_at = NOW()
		WHERE id = $1`

	ok, err := execOne(ctx, t.tx, query, promocodeID, revenue)
	if err != nil {
		return false, fmt.Errorf("failed to record promocode usage %s: %w", promocodeID, err)
	}
	return ok, nil
}

// IncrementTrackingLinkPurchases counts one purchase on a tracking link. A
// link nested under the order's promocode is preferred over a top-level one.
func (t *paymentTx) IncrementTrackingLinkPurchases(ctx context.Context, linkID string, promocodeID *string) (bool, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "tracking_links", "UPDATE")
	defer seg.End()

	if promocodeID != nil {
		nested := `
			UPDATE tracking_links SET purchases = purchases + 1, updated_at = NOW()
			WHERE id = $1 AND promocode_id = $2`
		ok, err := execOne(ctx, t.tx, nested, linkID, *promocodeID)
		if err != nil {
			return false, fmt.Errorf("failed to update tracking link %s: %w", linkID, err)
		}
		if ok {
			return true, nil
		}
	}

	topLevel := `
		UPDATE tracking_links SET purchases = purchases + 1, updated_at = NOW()
		WHERE id = $1 AND promocode_id IS NULL`
	ok, err := execOne(ctx, t.tx, topLevel, linkID)
	if err != nil {
		return false, fmt.Errorf("failed to update tracking link %s: %w", linkID, err)
	}
	return ok, nil
}
