package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/piresc/ticketing/internal/pkg/models"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
)

// raw_callback is write-only from this service
const transactionColumns = `id, order_id, amount, status, checkout_request_id, merchant_request_id,
		mpesa_receipt_number, transaction_date, phone_number, fail_reason, retry_count,
		created_at, updated_at, completed_at`

// GetTransactionForUpdate locks and returns a transaction
func (t *paymentTx) GetTransactionForUpdate(ctx context.Context, id string) (*models.Transaction, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "transactions", "SELECT FOR UPDATE")
	defer seg.End()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	var txn models.Transaction
	if err := t.tx.GetContext(ctx, &txn, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", id, err)
	}
	return &txn, nil
}

// CompleteTransaction marks a transaction completed with the receipt details.
// Empty receipt fields keep whatever was stored before.
func (t *paymentTx) CompleteTransaction(ctx context.Context, id string, receipt models.PaymentReceipt) error {
	seg := nrpkg.StartDatastoreSegment(ctx, "transactions", "UPDATE")
	defer seg.End()

	query := `
		UPDATE transactions SET
			status = $2,
			merchant_request_id = COALESCE($3, merchant_request_id),
			mpesa_receipt_number = COALESCE($4, mpesa_receipt_number),
			transaction_date = COALESCE($5, transaction_date),
			phone_number = COALESCE($6, phone_number),
			fail_reason = NULL,
			completed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`

	ok, err := execOne(ctx, t.tx, query,
		id,
		models.TransactionCompleted,
		nullString(receipt.MerchantRequestID),
		nullString(receipt.ReceiptNumber),
		receipt.TransactionDate,
		nullString(receipt.PhoneNumber),
	)
	if err != nil {
		return fmt.Errorf("failed to complete transaction %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("failed to complete transaction %s: no rows updated", id)
	}
	return nil
}

// FailTransaction marks a transaction failed and keeps the raw callback for audit
func (t *paymentTx) FailTransaction(ctx context.Context, id string, failure models.PaymentFailure) error {
	seg := nrpkg.StartDatastoreSegment(ctx, "transactions", "UPDATE")
	defer seg.End()

	var raw *string
	if len(failure.RawCallback) > 0 {
		s := string(failure.RawCallback)
		raw = &s
	}

	query := `
		UPDATE transactions SET
			status = $2,
			merchant_request_id = COALESCE($3, merchant_request_id),
			fail_reason = $4,
			raw_callback = $5::jsonb,
			retry_count = retry_count + 1,
			updated_at = NOW()
		WHERE id = $1`

	ok, err := execOne(ctx, t.tx, query,
		id,
		models.TransactionFailed,
		nullString(failure.MerchantRequestID),
		failure.Reason,
		raw,
	)
	if err != nil {
		return fmt.Errorf("failed to fail transaction %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("failed to fail transaction %s: no rows updated", id)
	}
	return nil
}
