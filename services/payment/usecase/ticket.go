package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/internal/utils"
)

const ticketCodePrefix = "TKT"

// TicketIssuer mints valid online-sale tickets with random scannable codes
type TicketIssuer struct {
	now func() time.Time
}

// NewTicketIssuer creates a ticket issuer
func NewTicketIssuer() *TicketIssuer {
	return &TicketIssuer{now: time.Now}
}

// Issue creates one ticket. It does not persist anything.
func (i *TicketIssuer) Issue(orderID, listingID, ticketType string, buyer models.Buyer) (*models.Ticket, error) {
	code, err := utils.GenerateTicketCode(ticketCodePrefix)
	if err != nil {
		return nil, err
	}

	return &models.Ticket{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		ListingID:   listingID,
		TicketType:  ticketType,
		Code:        code,
		Status:      models.TicketValid,
		IssuingMode: models.IssuingModeOnlineSale,
		BuyerName:   buyer.Name,
		BuyerEmail:  buyer.Email,
		CreatedAt:   i.now(),
	}, nil
}
