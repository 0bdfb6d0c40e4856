package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/piresc/ticketing/internal/pkg/models"
)

// Email API templates
const (
	TemplateTicketConfirmation = "ticket_confirmation"
	TemplateMerchPickup        = "merch_pickup"
)

var errEmailNotConfigured = errors.New("email API not configured")

// HTTPPoster is the slice of the outbound HTTP client the email gateway needs
type HTTPPoster interface {
	PostJSON(ctx context.Context, url string, headers map[string]string, payload interface{}) ([]byte, error)
}

// emailRequest is the body accepted by the transactional email API
type emailRequest struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	ToName   string      `json:"to_name,omitempty"`
	Subject  string      `json:"subject"`
	Template string      `json:"template"`
	Data     interface{} `json:"data"`
}

// EmailGateway sends confirmation emails through the email API
type EmailGateway struct {
	client   HTTPPoster
	endpoint string
	apiKey   string
	from     string
}

// NewEmailGateway creates a new email gateway
func NewEmailGateway(client HTTPPoster, config models.EmailConfig) *EmailGateway {
	endpoint := ""
	if base := strings.TrimRight(config.BaseURL, "/"); base != "" {
		endpoint = base + "/v1/emails"
	}
	return &EmailGateway{
		client:   client,
		endpoint: endpoint,
		apiKey:   config.APIKey,
		from:     config.From,
	}
}

// SendTicketEmail sends the ticket confirmation with the issued codes
func (g *EmailGateway) SendTicketEmail(ctx context.Context, email *models.TicketEmail) error {
	return g.send(ctx, emailRequest{
		From:     g.from,
		To:       email.BuyerEmail,
		ToName:   email.BuyerName,
		Subject:  fmt.Sprintf("Your tickets for %s", email.ListingName),
		Template: TemplateTicketConfirmation,
		Data:     email,
	})
}

// SendMerchPickupEmail tells the buyer their merchandise is ready for pickup
func (g *EmailGateway) SendMerchPickupEmail(ctx context.Context, email *models.MerchPickupEmail) error {
	return g.send(ctx, emailRequest{
		From:     g.from,
		To:       email.BuyerEmail,
		ToName:   email.BuyerName,
		Subject:  fmt.Sprintf("Order %s is ready for pickup", email.OrderID),
		Template: TemplateMerchPickup,
		Data:     email,
	})
}

func (g *EmailGateway) send(ctx context.Context, req emailRequest) error {
	if g.client == nil || g.endpoint == "" {
		return errEmailNotConfigured
	}

	headers := map[string]string{"Authorization": "Bearer " + g.apiKey}
	if _, err := g.client.PostJSON(ctx, g.endpoint, headers, req); err != nil {
		return fmt.Errorf("failed to send %s email: %w", req.Template, err)
	}
	return nil
}
