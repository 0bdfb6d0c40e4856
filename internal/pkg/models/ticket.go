package models

import "time"

// TicketStatus is the admission state of a ticket
type TicketStatus string

const (
	TicketValid   TicketStatus = "valid"
	TicketUsed    TicketStatus = "used"
	TicketInvalid TicketStatus = "invalid"
)

// IssuingModeOnlineSale marks tickets issued from a paid online checkout
const IssuingModeOnlineSale = "online_sale"

// Ticket is one admission unit issued for a completed order
type Ticket struct {
	ID          string       `json:"id" db:"id"`
	OrderID     string       `json:"order_id" db:"order_id"`
	ListingID   string       `json:"listing_id" db:"listing_id"`
	TicketType  string       `json:"ticket_type" db:"ticket_type"`
	Code        string       `json:"code" db:"code"`
	Status      TicketStatus `json:"status" db:"status"`
	IssuingMode string       `json:"issuing_mode" db:"issuing_mode"`
	BuyerName   string       `json:"buyer_name" db:"buyer_name"`
	BuyerEmail  string       `json:"buyer_email" db:"buyer_email"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// TicketSummary is the per-type line shown in the confirmation email
type TicketSummary struct {
	TicketType string   `json:"ticket_type"`
	Quantity   int      `json:"quantity"`
	Codes      []string `json:"codes"`
}
