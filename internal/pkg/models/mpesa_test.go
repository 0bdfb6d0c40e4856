package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stkSuccess = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 1.00},
          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
          {"Name": "Balance"},
          {"Name": "TransactionDate", "Value": 20191219102115},
          {"Name": "PhoneNumber", "Value": 254708374149}
        ]
      }
    }
  }
}`

const stkCancelled = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 1032,
      "ResultDesc": "Request cancelled by user"
    }
  }
}`

func TestMpesaCallback_DecodeSuccess(t *testing.T) {
	var cb MpesaCallback
	require.NoError(t, json.Unmarshal([]byte(stkSuccess), &cb))

	stk := cb.Body.StkCallback
	assert.True(t, stk.Succeeded())
	assert.Equal(t, "ws_CO_191220191020363925", stk.CheckoutRequestID)
	require.NotNil(t, stk.CallbackMetadata)

	receipt, ok := stk.CallbackMetadata.Value(MetadataReceiptNumber)
	require.True(t, ok)
	text, ok := receipt.Text()
	assert.True(t, ok)
	assert.Equal(t, "NLJ7RT61SV", text)

	// large integers survive without float rounding
	date, ok := stk.CallbackMetadata.Value(MetadataTransactionDate)
	require.True(t, ok)
	n, ok := date.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(20191219102115), n)

	phone, ok := stk.CallbackMetadata.Value(MetadataPhoneNumber)
	require.True(t, ok)
	text, _ = phone.Text()
	assert.Equal(t, "254708374149", text)

	amount, ok := stk.CallbackMetadata.Value(MetadataAmount)
	require.True(t, ok)
	d, ok := amount.Decimal()
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(1).Equal(d))

	_, ok = stk.CallbackMetadata.Value("Balance")
	assert.False(t, ok, "an item without a value is treated as absent")

	_, ok = stk.CallbackMetadata.Value("Unknown")
	assert.False(t, ok)
}

func TestMpesaCallback_DecodeFailure(t *testing.T) {
	var cb MpesaCallback
	require.NoError(t, json.Unmarshal([]byte(stkCancelled), &cb))

	stk := cb.Body.StkCallback
	assert.False(t, stk.Succeeded())
	assert.Equal(t, 1032, stk.ResultCode)
	assert.Equal(t, "Request cancelled by user", stk.ResultDesc)
	assert.Nil(t, stk.CallbackMetadata)

	_, ok := stk.CallbackMetadata.Value(MetadataReceiptNumber)
	assert.False(t, ok, "lookups on a missing metadata block are safe")
}

func TestMetadataValue_Conversions(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantText    string
		wantTextOK  bool
		wantInt     int64
		wantIntOK   bool
		wantDecimal string
		wantDecOK   bool
	}{
		{
			name:     "quoted phone number",
			raw:      `"254708374149"`,
			wantText: "254708374149", wantTextOK: true,
			wantInt: 254708374149, wantIntOK: true,
			wantDecimal: "254708374149", wantDecOK: true,
		},
		{
			name:     "decimal amount",
			raw:      `5000.50`,
			wantText: "5000.50", wantTextOK: true,
			wantIntOK:   false,
			wantDecimal: "5000.5", wantDecOK: true,
		},
		{
			name:     "receipt text",
			raw:      `"NLJ7RT61SV"`,
			wantText: "NLJ7RT61SV", wantTextOK: true,
		},
		{
			name: "null",
			raw:  `null`,
		},
		{
			name: "object",
			raw:  `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MetadataValue(tt.raw)

			text, ok := v.Text()
			assert.Equal(t, tt.wantTextOK, ok)
			assert.Equal(t, tt.wantText, text)

			n, ok := v.Int64()
			assert.Equal(t, tt.wantIntOK, ok)
			if tt.wantIntOK {
				assert.Equal(t, tt.wantInt, n)
			}

			d, ok := v.Decimal()
			assert.Equal(t, tt.wantDecOK, ok)
			if tt.wantDecOK {
				assert.True(t, decimal.RequireFromString(tt.wantDecimal).Equal(d))
			}
		})
	}
}

func TestMetadataValue_MarshalRoundTrip(t *testing.T) {
	item := MetadataItem{Name: MetadataPhoneNumber, Value: MetadataValue(`254708374149`)}
	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"PhoneNumber","Value":254708374149}`, string(data))

	var empty MetadataValue
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
	assert.True(t, empty.IsNull())
}
