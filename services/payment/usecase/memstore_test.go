package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/services/payment"
	"github.com/shopspring/decimal"
)

// memState is one consistent snapshot of every table the reconciler touches
type memState struct {
	txns         map[string]models.Transaction
	orders       map[string]models.Order
	merchOrders  map[string]models.MerchOrder
	products     map[string]models.Product
	tickets      []models.Ticket
	promoUsage   map[string]int
	promoRevenue map[string]decimal.Decimal
	linkPromo    map[string]*string
	linkBuys     map[string]int
}

func newMemState() *memState {
	return &memState{
		txns:         make(map[string]models.Transaction),
		orders:       make(map[string]models.Order),
		merchOrders:  make(map[string]models.MerchOrder),
		products:     make(map[string]models.Product),
		promoUsage:   make(map[string]int),
		promoRevenue: make(map[string]decimal.Decimal),
		linkPromo:    make(map[string]*string),
		linkBuys:     make(map[string]int),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.txns {
		c.txns[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.merchOrders {
		c.merchOrders[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.tickets = append(c.tickets, s.tickets...)
	for k, v := range s.promoUsage {
		c.promoUsage[k] = v
	}
	for k, v := range s.promoRevenue {
		c.promoRevenue[k] = v
	}
	for k, v := range s.linkPromo {
		c.linkPromo[k] = v
	}
	for k, v := range s.linkBuys {
		c.linkBuys[k] = v
	}
	return c
}

// memStore is an in-memory PaymentRepo. Units run one at a time on a private
// copy that replaces the shared state only when the unit succeeds, which is
// the isolation the row locks give the Postgres repository.
type memStore struct {
	mu    sync.Mutex
	state *memState
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (m *memStore) FindTransactionsByCheckoutID(ctx context.Context, checkoutRequestID string) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*models.Transaction
	for _, txn := range m.state.txns {
		if txn.CheckoutRequestID == checkoutRequestID {
			txn := txn
			out = append(out, &txn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx payment.PaymentTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	working := m.state.clone()
	if err := fn(ctx, &memTx{s: working}); err != nil {
		return err
	}
	m.state = working
	return nil
}

// snapshot returns a copy of the committed state for assertions
func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

func (m *memStore) seed(fn func(s *memState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.state)
}

type memTx struct {
	s *memState
}

func (t *memTx) GetTransactionForUpdate(ctx context.Context, id string) (*models.Transaction, error) {
	txn, ok := t.s.txns[id]
	if !ok {
		return nil, nil
	}
	return &txn, nil
}

func (t *memTx) GetOrderForUpdate(ctx context.Context, id string) (*models.Order, error) {
	order, ok := t.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (t *memTx) GetMerchOrderForUpdate(ctx context.Context, id string) (*models.MerchOrder, error) {
	order, ok := t.s.merchOrders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (t *memTx) GetProductForUpdate(ctx context.Context, id string) (*models.Product, error) {
	product, ok := t.s.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (t *memTx) CompleteTransaction(ctx context.Context, id string, receipt models.PaymentReceipt) error {
	txn, ok := t.s.txns[id]
	if !ok {
		return fmt.Errorf("transaction %s not found", id)
	}
	now := time.Now()
	txn.Status = models.TransactionCompleted
	if receipt.ReceiptNumber != "" {
		txn.MpesaReceiptNumber = &receipt.ReceiptNumber
	}
	if receipt.PhoneNumber != "" {
		txn.PhoneNumber = &receipt.PhoneNumber
	}
	txn.TransactionDate = receipt.TransactionDate
	txn.FailReason = nil
	txn.CompletedAt = &now
	txn.UpdatedAt = now
	t.s.txns[id] = txn
	return nil
}

func (t *memTx) FailTransaction(ctx context.Context, id string, failure models.PaymentFailure) error {
	txn, ok := t.s.txns[id]
	if !ok {
		return fmt.Errorf("transaction %s not found", id)
	}
	txn.Status = models.TransactionFailed
	txn.FailReason = &failure.Reason
	txn.RetryCount++
	txn.RawCallback = failure.RawCallback
	txn.UpdatedAt = time.Now()
	t.s.txns[id] = txn
	return nil
}

func (t *memTx) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	order := t.s.orders[id]
	order.Status = status
	t.s.orders[id] = order
	return nil
}

func (t *memTx) UpdateMerchOrderStatus(ctx context.Context, id string, status models.MerchOrderStatus) error {
	order := t.s.merchOrders[id]
	order.Status = status
	t.s.merchOrders[id] = order
	return nil
}

func (t *memTx) CreateTickets(ctx context.Context, tickets []*models.Ticket) error {
	seen := make(map[string]bool, len(t.s.tickets))
	for _, existing := range t.s.tickets {
		seen[existing.Code] = true
	}
	for _, ticket := range tickets {
		if seen[ticket.Code] {
			return fmt.Errorf("duplicate ticket code %s", ticket.Code)
		}
		seen[ticket.Code] = true
		t.s.tickets = append(t.s.tickets, *ticket)
	}
	return nil
}

func (t *memTx) RecordPromocodeUsage(ctx context.Context, promocodeID string, revenue decimal.Decimal) (bool, error) {
	if _, ok := t.s.promoUsage[promocodeID]; !ok {
		return false, nil
	}
	t.s.promoUsage[promocodeID]++
	t.s.promoRevenue[promocodeID] = t.s.promoRevenue[promocodeID].Add(revenue)
	return true, nil
}

func (t *memTx) IncrementTrackingLinkPurchases(ctx context.Context, linkID string, promocodeID *string) (bool, error) {
	owner, ok := t.s.linkPromo[linkID]
	if !ok {
		return false, nil
	}
	if owner != nil && (promocodeID == nil || *owner != *promocodeID) {
		return false, nil
	}
	t.s.linkBuys[linkID]++
	return true, nil
}

func (t *memTx) DecrementProductStock(ctx context.Context, productID string, quantity int) error {
	product, ok := t.s.products[productID]
	if !ok || product.Stock < quantity {
		return payment.ErrInsufficientStock
	}
	product.Stock -= quantity
	t.s.products[productID] = product
	return nil
}

// memCache is an in-memory StatusCache
type memCache struct {
	mu    sync.Mutex
	views map[string]models.PaymentStatusView
}

func newMemCache() *memCache {
	return &memCache{views: make(map[string]models.PaymentStatusView)}
}

func (c *memCache) SetPaymentStatus(ctx context.Context, view *models.PaymentStatusView, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[view.CheckoutRequestID] = *view
	return nil
}

func (c *memCache) GetPaymentStatus(ctx context.Context, checkoutRequestID string) (*models.PaymentStatusView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	view, ok := c.views[checkoutRequestID]
	if !ok {
		return nil, nil
	}
	return &view, nil
}

// recordingGW collects everything the reconciler sends out
type recordingGW struct {
	mu           sync.Mutex
	ticketEmails []*models.TicketEmail
	merchEmails  []*models.MerchPickupEmail
	completed    []*models.PaymentEvent
	failed       []*models.PaymentEvent
}

func (g *recordingGW) SendTicketEmail(ctx context.Context, email *models.TicketEmail) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ticketEmails = append(g.ticketEmails, email)
	return nil
}

func (g *recordingGW) SendMerchPickupEmail(ctx context.Context, email *models.MerchPickupEmail) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.merchEmails = append(g.merchEmails, email)
	return nil
}

func (g *recordingGW) PublishPaymentCompleted(ctx context.Context, event *models.PaymentEvent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completed = append(g.completed, event)
	return nil
}

func (g *recordingGW) PublishPaymentFailed(ctx context.Context, event *models.PaymentEvent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failed = append(g.failed, event)
	return nil
}
