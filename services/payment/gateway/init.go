package gateway

import (
	"github.com/piresc/ticketing/internal/pkg/models"
	natspkg "github.com/piresc/ticketing/internal/pkg/nats"
	"github.com/piresc/ticketing/services/payment"
)

// PaymentGW handles payment gateway operations
type PaymentGW struct {
	natsGateway  *NATSGateway
	emailGateway *EmailGateway
}

// NewPaymentGW creates a unified gateway over the NATS publisher and the email API client
func NewPaymentGW(natsClient *natspkg.Client, emailClient HTTPPoster, config models.EmailConfig) payment.PaymentGW {
	return &PaymentGW{
		natsGateway:  NewNATSGateway(natsClient),
		emailGateway: NewEmailGateway(emailClient, config),
	}
}
