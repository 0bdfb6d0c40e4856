package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/ticketing/internal/pkg/database"
	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/models"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
	"github.com/piresc/ticketing/internal/pkg/retry"
	"github.com/piresc/ticketing/services/payment"
)

const defaultTxMaxRetries = 3

// PaymentRepo implements the payment repository interface on PostgreSQL
type PaymentRepo struct {
	cfg     *models.Config
	db      *sqlx.DB
	retrier *retry.Retrier
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(cfg *models.Config, db *sqlx.DB, log *logger.ZapLogger) *PaymentRepo {
	maxRetries := cfg.Payment.TxMaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultTxMaxRetries
	}

	retrier := retry.New(retry.Config{
		MaxRetries:    maxRetries,
		BaseDelay:     20 * time.Millisecond,
		MaxDelay:      500 * time.Millisecond,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: database.IsRetryableTxError,
	}, log)

	return &PaymentRepo{
		cfg:     cfg,
		db:      db,
		retrier: retrier,
	}
}

// FindTransactionsByCheckoutID returns every transaction carrying the checkout request id
func (r *PaymentRepo) FindTransactionsByCheckoutID(ctx context.Context, checkoutRequestID string) ([]*models.Transaction, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "transactions", "SELECT")
	defer seg.End()

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE checkout_request_id = $1
		ORDER BY created_at, id`

	var txs []*models.Transaction
	if err := r.db.SelectContext(ctx, &txs, query, checkoutRequestID); err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	return txs, nil
}

// WithinTx runs fn inside a database transaction, retrying the whole unit
// when PostgreSQL aborts it for a serialization failure or deadlock.
func (r *PaymentRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx payment.PaymentTx) error) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := fn(ctx, &paymentTx{tx: tx}); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}

// paymentTx is the row-locking view handed to WithinTx callbacks
type paymentTx struct {
	tx *sqlx.Tx
}

func execOne(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) (bool, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
