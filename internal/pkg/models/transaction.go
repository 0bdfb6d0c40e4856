package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a payment attempt
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionCompleted || s == TransactionFailed
}

// Transaction represents one M-Pesa payment attempt for an order or merch order
type Transaction struct {
	ID                 string            `json:"id" db:"id"`
	OrderID            string            `json:"order_id" db:"order_id"`
	Amount             decimal.Decimal   `json:"amount" db:"amount"`
	Status             TransactionStatus `json:"status" db:"status"`
	CheckoutRequestID  string            `json:"checkout_request_id" db:"checkout_request_id"`
	MerchantRequestID  *string           `json:"merchant_request_id,omitempty" db:"merchant_request_id"`
	MpesaReceiptNumber *string           `json:"mpesa_receipt_number,omitempty" db:"mpesa_receipt_number"`
	TransactionDate    *time.Time        `json:"transaction_date,omitempty" db:"transaction_date"`
	PhoneNumber        *string           `json:"phone_number,omitempty" db:"phone_number"`
	FailReason         *string           `json:"fail_reason,omitempty" db:"fail_reason"`
	RetryCount         int               `json:"retry_count" db:"retry_count"`
	RawCallback        json.RawMessage   `json:"-" db:"raw_callback"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" db:"updated_at"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
}

// PaymentReceipt holds the best-effort details extracted from a success callback
type PaymentReceipt struct {
	MerchantRequestID string
	ReceiptNumber     string
	TransactionDate   *time.Time
	PhoneNumber       string
	Amount            *decimal.Decimal
}

// PaymentFailure holds what is recorded when the provider reports a failed payment
type PaymentFailure struct {
	MerchantRequestID string
	Reason            string
	RawCallback       json.RawMessage
}
