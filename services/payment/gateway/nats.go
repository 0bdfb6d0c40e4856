package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/ticketing/internal/pkg/constants"
	"github.com/piresc/ticketing/internal/pkg/models"
	natspkg "github.com/piresc/ticketing/internal/pkg/nats"
)

var errNATSNotConfigured = errors.New("nats client not configured")

// NATSGateway publishes payment lifecycle events
type NATSGateway struct {
	natsClient *natspkg.Client
}

// NewNATSGateway creates a new NATS gateway instance
func NewNATSGateway(client *natspkg.Client) *NATSGateway {
	return &NATSGateway{
		natsClient: client,
	}
}

// PublishPaymentCompleted publishes a completed payment event
func (g *NATSGateway) PublishPaymentCompleted(ctx context.Context, event *models.PaymentEvent) error {
	return g.publish(constants.SubjectPaymentCompleted, event)
}

// PublishPaymentFailed publishes a failed payment event
func (g *NATSGateway) PublishPaymentFailed(ctx context.Context, event *models.PaymentEvent) error {
	return g.publish(constants.SubjectPaymentFailed, event)
}

func (g *NATSGateway) publish(subject string, event *models.PaymentEvent) error {
	if g.natsClient == nil {
		return errNATSNotConfigured
	}
	if err := g.natsClient.PublishJSON(subject, event); err != nil {
		return fmt.Errorf("failed to publish %s for transaction %s: %w", subject, event.TransactionID, err)
	}
	return nil
}
