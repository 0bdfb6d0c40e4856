package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CallbackOutcome describes how a callback delivery was handled
type CallbackOutcome string

const (
	// OutcomeProcessed means this delivery applied the state transition
	OutcomeProcessed CallbackOutcome = "processed"
	// OutcomeAlreadyProcessed means an earlier delivery already settled the payment
	OutcomeAlreadyProcessed CallbackOutcome = "already_processed"
	// OutcomeNotFound means no transaction matches the checkout request id
	OutcomeNotFound CallbackOutcome = "not_found"
)

// CallbackResult is returned to the provider once a callback is acknowledged
type CallbackResult struct {
	CheckoutRequestID string            `json:"checkout_request_id"`
	Outcome           CallbackOutcome   `json:"outcome"`
	TransactionID     string            `json:"transaction_id,omitempty"`
	Status            TransactionStatus `json:"status,omitempty"`
	OrderKind         OrderKind         `json:"order_kind,omitempty"`
	TicketsIssued     int               `json:"tickets_issued,omitempty"`
}

// PaymentStatusView is what the checkout page polls while waiting for the callback
type PaymentStatusView struct {
	CheckoutRequestID string            `json:"checkout_request_id"`
	TransactionID     string            `json:"transaction_id"`
	OrderID           string            `json:"order_id"`
	Status            TransactionStatus `json:"status"`
	ReceiptNumber     string            `json:"receipt_number,omitempty"`
	FailReason        string            `json:"fail_reason,omitempty"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// NewPaymentStatusView builds the polling view of a transaction
func NewPaymentStatusView(tx *Transaction) *PaymentStatusView {
	view := &PaymentStatusView{
		CheckoutRequestID: tx.CheckoutRequestID,
		TransactionID:     tx.ID,
		OrderID:           tx.OrderID,
		Status:            tx.Status,
		UpdatedAt:         tx.UpdatedAt,
	}
	if tx.MpesaReceiptNumber != nil {
		view.ReceiptNumber = *tx.MpesaReceiptNumber
	}
	if tx.FailReason != nil {
		view.FailReason = *tx.FailReason
	}
	return view
}

// PaymentEvent is published once a payment reaches a terminal state
type PaymentEvent struct {
	TransactionID     string            `json:"transaction_id"`
	CheckoutRequestID string            `json:"checkout_request_id"`
	OrderID           string            `json:"order_id"`
	OrderKind         OrderKind         `json:"order_kind"`
	Status            TransactionStatus `json:"status"`
	Amount            decimal.Decimal   `json:"amount"`
	ReceiptNumber     string            `json:"receipt_number,omitempty"`
	FailReason        string            `json:"fail_reason,omitempty"`
	TicketsIssued     int               `json:"tickets_issued,omitempty"`
	OccurredAt        time.Time         `json:"occurred_at"`
}

// TicketEmail is the confirmation sent after a ticket order completes
type TicketEmail struct {
	BuyerEmail  string          `json:"buyer_email"`
	BuyerName   string          `json:"buyer_name"`
	OrderID     string          `json:"order_id"`
	ListingName string          `json:"listing_name"`
	Tickets     []TicketSummary `json:"tickets"`
}

// MerchPickupEmail is sent after a merch order is paid and reserved for pickup
type MerchPickupEmail struct {
	BuyerEmail string          `json:"buyer_email"`
	BuyerName  string          `json:"buyer_name"`
	OrderID    string          `json:"order_id"`
	Items      []MerchItem     `json:"items"`
	Total      decimal.Decimal `json:"total"`
}
