package payment

import (
	"context"
	"time"

	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/ticketing/services/payment PaymentRepo,PaymentTx,StatusCache

// PaymentRepo is the transactional store behind the reconciler
type PaymentRepo interface {
	// FindTransactionsByCheckoutID returns matches ordered by created_at, id
	FindTransactionsByCheckoutID(ctx context.Context, checkoutRequestID string) ([]*models.Transaction, error)

	// WithinTx runs fn in one database transaction. It commits when fn returns
	// nil and rolls back otherwise. Serialization failures and deadlocks are
	// retried with a fresh transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx PaymentTx) error) error
}

// PaymentTx exposes the reads and writes allowed inside WithinTx. Every Get
// method locks the row it returns and reports nil, nil when the row is absent.
type PaymentTx interface {
	GetTransactionForUpdate(ctx context.Context, id string) (*models.Transaction, error)
	GetOrderForUpdate(ctx context.Context, id string) (*models.Order, error)
	GetMerchOrderForUpdate(ctx context.Context, id string) (*models.MerchOrder, error)
	GetProductForUpdate(ctx context.Context, id string) (*models.Product, error)

	CompleteTransaction(ctx context.Context, id string, receipt models.PaymentReceipt) error
	FailTransaction(ctx context.Context, id string, failure models.PaymentFailure) error

	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	UpdateMerchOrderStatus(ctx context.Context, id string, status models.MerchOrderStatus) error
	CreateTickets(ctx context.Context, tickets []*models.Ticket) error

	// RecordPromocodeUsage and IncrementTrackingLinkPurchases report false when
	// the referenced row no longer exists
	RecordPromocodeUsage(ctx context.Context, promocodeID string, revenue decimal.Decimal) (bool, error)
	IncrementTrackingLinkPurchases(ctx context.Context, linkID string, promocodeID *string) (bool, error)

	// DecrementProductStock fails with ErrInsufficientStock rather than go below zero
	DecrementProductStock(ctx context.Context, productID string, quantity int) error
}

// StatusCache keeps the latest payment status for checkout polling
type StatusCache interface {
	SetPaymentStatus(ctx context.Context, view *models.PaymentStatusView, ttl time.Duration) error
	// GetPaymentStatus returns nil, nil on a cache miss
	GetPaymentStatus(ctx context.Context, checkoutRequestID string) (*models.PaymentStatusView, error)
}
