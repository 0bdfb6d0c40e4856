package gateway

import (
	"context"

	"github.com/piresc/ticketing/internal/pkg/models"
)

// Email delegation methods

// SendTicketEmail forwards to the email gateway implementation
func (g *PaymentGW) SendTicketEmail(ctx context.Context, email *models.TicketEmail) error {
	return g.emailGateway.SendTicketEmail(ctx, email)
}

// SendMerchPickupEmail forwards to the email gateway implementation
func (g *PaymentGW) SendMerchPickupEmail(ctx context.Context, email *models.MerchPickupEmail) error {
	return g.emailGateway.SendMerchPickupEmail(ctx, email)
}

// NATS delegation methods

// PublishPaymentCompleted forwards to the NATS gateway implementation
func (g *PaymentGW) PublishPaymentCompleted(ctx context.Context, event *models.PaymentEvent) error {
	return g.natsGateway.PublishPaymentCompleted(ctx, event)
}

// PublishPaymentFailed forwards to the NATS gateway implementation
func (g *PaymentGW) PublishPaymentFailed(ctx context.Context, event *models.PaymentEvent) error {
	return g.natsGateway.PublishPaymentFailed(ctx, event)
}
