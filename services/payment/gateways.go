package payment

import (
	"context"

	"github.com/piresc/ticketing/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/ticketing/services/payment PaymentGW

// PaymentGW sends everything that leaves the service after a payment settles
type PaymentGW interface {
	// Email API
	SendTicketEmail(ctx context.Context, email *models.TicketEmail) error
	SendMerchPickupEmail(ctx context.Context, email *models.MerchPickupEmail) error

	// NATS
	PublishPaymentCompleted(ctx context.Context, event *models.PaymentEvent) error
	PublishPaymentFailed(ctx context.Context, event *models.PaymentEvent) error
}

// TicketIssuer creates one admission ticket for a paid order
type TicketIssuer interface {
	Issue(orderID, listingID, ticketType string, buyer models.Buyer) (*models.Ticket, error)
}
