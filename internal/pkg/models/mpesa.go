package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// M-Pesa callback metadata item names
const (
	MetadataAmount          = "Amount"
	MetadataReceiptNumber   = "MpesaReceiptNumber"
	MetadataTransactionDate = "TransactionDate"
	MetadataPhoneNumber     = "PhoneNumber"
)

// MpesaResultSuccess is the STK ResultCode reported for a completed payment
const MpesaResultSuccess = 0

// MpesaCallback is the envelope Safaricom posts to the STK callback URL
type MpesaCallback struct {
	Body MpesaCallbackBody `json:"Body"`

	// Raw holds the request body as received, kept for audit on failure
	Raw json.RawMessage `json:"-"`
}

// MpesaCallbackBody wraps the STK result
type MpesaCallbackBody struct {
	StkCallback StkCallback `json:"stkCallback"`
}

// StkCallback carries the outcome of an STK push request
type StkCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID,omitempty"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

// Succeeded reports whether the provider accepted the payment
func (s StkCallback) Succeeded() bool {
	return s.ResultCode == MpesaResultSuccess
}

// CallbackMetadata is the flat name/value list sent on success
type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

// MetadataItem is one name/value pair. Value is absent for some names (e.g. Balance).
type MetadataItem struct {
	Name  string        `json:"Name"`
	Value MetadataValue `json:"Value,omitempty"`
}

// MetadataValue keeps the raw JSON of a metadata value so large numbers
// such as phone numbers and timestamps are never rounded through float64.
type MetadataValue json.RawMessage

// UnmarshalJSON stores the raw value bytes
func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

// MarshalJSON writes the raw value back out
func (v MetadataValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// IsNull reports whether the value is missing or JSON null
func (v MetadataValue) IsNull() bool {
	trimmed := bytes.TrimSpace(v)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Text returns the value as text: strings are unquoted, numbers are returned as written
func (v MetadataValue) Text() (string, bool) {
	if v.IsNull() {
		return "", false
	}
	trimmed := bytes.TrimSpace(v)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", false
	}
	return n.String(), true
}

// Int64 returns the value as an integer, accepting numeric strings
func (v MetadataValue) Int64() (int64, bool) {
	s, ok := v.Text()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Decimal returns the value as a decimal amount
func (v MetadataValue) Decimal() (decimal.Decimal, bool) {
	s, ok := v.Text()
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Value looks up a metadata item by name. A nil metadata block or an item
// without a value both report false.
func (m *CallbackMetadata) Value(name string) (MetadataValue, bool) {
	if m == nil {
		return nil, false
	}
	for _, item := range m.Item {
		if item.Name == name {
			if item.Value.IsNull() {
				return nil, false
			}
			return item.Value, true
		}
	}
	return nil, false
}
