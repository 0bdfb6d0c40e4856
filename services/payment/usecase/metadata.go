package usecase

import (
	"time"

	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/internal/utils"
	"go.uber.org/zap"
)

// M-Pesa reports TransactionDate as yyyyMMddHHmmss in East Africa Time
const mpesaTimestampLayout = "20060102150405"

var eastAfricaTime = time.FixedZone("EAT", 3*60*60)

// extractReceipt reads the optional success metadata. Nothing here is required
// to settle the payment, so unreadable values are logged and left empty.
func extractReceipt(stk models.StkCallback, log *zap.Logger) models.PaymentReceipt {
	receipt := models.PaymentReceipt{MerchantRequestID: stk.MerchantRequestID}
	meta := stk.CallbackMetadata

	if v, ok := meta.Value(models.MetadataReceiptNumber); ok {
		receipt.ReceiptNumber, _ = v.Text()
	}

	if v, ok := meta.Value(models.MetadataTransactionDate); ok {
		raw, _ := v.Text()
		if paidAt, err := time.ParseInLocation(mpesaTimestampLayout, raw, eastAfricaTime); err == nil {
			receipt.TransactionDate = &paidAt
		} else {
			log.Debug("Ignoring unparseable TransactionDate", logger.String("value", raw))
		}
	}

	if v, ok := meta.Value(models.MetadataPhoneNumber); ok {
		raw, _ := v.Text()
		if phone, err := utils.NormalizeMSISDN(raw); err == nil {
			receipt.PhoneNumber = phone
		} else {
			receipt.PhoneNumber = raw
		}
	}

	if v, ok := meta.Value(models.MetadataAmount); ok {
		if amount, ok := v.Decimal(); ok {
			receipt.Amount = &amount
		}
	}

	return receipt
}
