package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a ticket order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
	OrderRefunded  OrderStatus = "refunded"
)

// IsTerminal reports whether a callback may no longer change the order.
// A failed order stays open so a later payment attempt can still settle it.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderRefunded
}

// MerchOrderStatus is the lifecycle state of a merchandise order
type MerchOrderStatus string

const (
	MerchOrderPending        MerchOrderStatus = "pending"
	MerchOrderAwaitingPickup MerchOrderStatus = "awaiting_pickup"
	MerchOrderFailed         MerchOrderStatus = "failed"
)

// ListingType identifies what an order was placed against
type ListingType string

const (
	ListingEvent ListingType = "event"
	ListingTour  ListingType = "tour"
	ListingClub  ListingType = "club"
)

// PaymentType distinguishes a full purchase from a reservation fee
type PaymentType string

const (
	PaymentFull       PaymentType = "full"
	PaymentBookingFee PaymentType = "booking_fee"
)

// OrderKind names the record that owns a transaction
type OrderKind string

const (
	OrderKindTicket  OrderKind = "order"
	OrderKindMerch   OrderKind = "merch_order"
	OrderKindMissing OrderKind = "missing"
)

// Buyer holds the contact details captured at checkout
type Buyer struct {
	Name  string `json:"name" db:"buyer_name"`
	Email string `json:"email" db:"buyer_email"`
	Phone string `json:"phone" db:"buyer_phone"`
}

// TicketLine is one requested ticket type on an order
type TicketLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// TicketLines is stored as a JSONB column
type TicketLines []TicketLine

// Value implements driver.Valuer
func (t TicketLines) Value() (driver.Value, error) {
	return jsonValue(t)
}

// Scan implements sql.Scanner
func (t *TicketLines) Scan(src interface{}) error {
	return scanJSON(src, t)
}

// Order is a checkout intent against an event or tour
type Order struct {
	ID string `json:"id" db:"id"`
	Buyer
	ListingID      string          `json:"listing_id" db:"listing_id"`
	ListingType    ListingType     `json:"listing_type" db:"listing_type"`
	ListingName    string          `json:"listing_name" db:"listing_name"`
	PaymentType    PaymentType     `json:"payment_type" db:"payment_type"`
	Tickets        TicketLines     `json:"tickets" db:"tickets"`
	Subtotal       decimal.Decimal `json:"subtotal" db:"subtotal"`
	Total          decimal.Decimal `json:"total" db:"total"`
	Status         OrderStatus     `json:"status" db:"status"`
	PromocodeID    *string         `json:"promocode_id,omitempty" db:"promocode_id"`
	TrackingLinkID *string         `json:"tracking_link_id,omitempty" db:"tracking_link_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// TicketCount returns the number of admission units requested
func (o *Order) TicketCount() int {
	total := 0
	for _, line := range o.Tickets {
		total += line.Quantity
	}
	return total
}

// MerchItem is one product line on a merchandise order
type MerchItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// MerchItems is stored as a JSONB column
type MerchItems []MerchItem

// Value implements driver.Valuer
func (m MerchItems) Value() (driver.Value, error) {
	return jsonValue(m)
}

// Scan implements sql.Scanner
func (m *MerchItems) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// MerchOrder is a checkout intent against physical products
type MerchOrder struct {
	ID string `json:"id" db:"id"`
	Buyer
	Items     MerchItems       `json:"items" db:"items"`
	Total     decimal.Decimal  `json:"total" db:"total"`
	Status    MerchOrderStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// Product is an inventory item sold through merch orders
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Stock     int       `json:"stock" db:"stock"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
}
