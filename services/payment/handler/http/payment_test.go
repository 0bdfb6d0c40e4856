package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/ticketing/internal/pkg/middleware"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/internal/utils"
	"github.com/piresc/ticketing/services/payment"
	"github.com/piresc/ticketing/services/payment/mocks"
)

const successCallback = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 5000.00},
          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
          {"Name": "Balance"},
          {"Name": "TransactionDate", "Value": 20191219102115},
          {"Name": "PhoneNumber", "Value": 254708374149}
        ]
      }
    }
  }
}`

func newCallbackContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNewPaymentHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUC(ctrl)
	handler := NewPaymentHandler(mockUC)

	assert.NotNil(t, handler)
	assert.Equal(t, mockUC, handler.paymentUC)
}

func TestPaymentHandler_MpesaCallback_Outcomes(t *testing.T) {
	testCases := []struct {
		name            string
		outcome         models.CallbackOutcome
		expectedMessage string
	}{
		{"processed", models.OutcomeProcessed, "Callback processed successfully"},
		{"duplicate delivery", models.OutcomeAlreadyProcessed, "Callback already processed"},
		{"unknown checkout request", models.OutcomeNotFound, "Callback acknowledged, no matching transaction"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockPaymentUC(ctrl)
			handler := NewPaymentHandler(mockUC)

			mockUC.EXPECT().
				HandleMpesaCallback(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, cb *models.MpesaCallback) (*models.CallbackResult, error) {
					assert.Equal(t, "ws_CO_191220191020363925", cb.Body.StkCallback.CheckoutRequestID)
					assert.JSONEq(t, successCallback, string(cb.Raw), "raw body is kept for audit")

					receipt, ok := cb.Body.StkCallback.CallbackMetadata.Value(models.MetadataReceiptNumber)
					require.True(t, ok)
					text, _ := receipt.Text()
					assert.Equal(t, "NLJ7RT61SV", text)

					return &models.CallbackResult{
						CheckoutRequestID: cb.Body.StkCallback.CheckoutRequestID,
						Outcome:           tc.outcome,
					}, nil
				}).
				Times(1)

			c, rec := newCallbackContext(successCallback)
			err := handler.MpesaCallback(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			resp := decodeResponse(t, rec)
			assert.True(t, resp.Success)
			assert.Equal(t, tc.expectedMessage, resp.Message)
		})
	}
}

func TestPaymentHandler_MpesaCallback_Rejected(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"not json", `this is not json`},
		{"truncated envelope", `{"Body":{"stkCallback":`},
		{"missing checkout request id", `{"Body":{"stkCallback":{"ResultCode":0}}}`},
		{"blank checkout request id", `{"Body":{"stkCallback":{"CheckoutRequestID":"   ","ResultCode":1032}}}`},
		{"empty body", ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no state is touched for a malformed body
			mockUC := mocks.NewMockPaymentUC(ctrl)
			handler := NewPaymentHandler(mockUC)

			c, rec := newCallbackContext(tc.body)
			err := handler.MpesaCallback(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid callback payload")
		})
	}
}

func TestPaymentHandler_MpesaCallback_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "invalid callback from reconciler",
			err:            fmt.Errorf("checkout request id is blank: %w", payment.ErrInvalidCallback),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid callback payload",
		},
		{
			name:           "internal failure asks for redelivery",
			err:            errors.New("failed to settle transaction txn-1: connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Failed to process callback",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockPaymentUC(ctrl)
			handler := NewPaymentHandler(mockUC)

			mockUC.EXPECT().
				HandleMpesaCallback(gomock.Any(), gomock.Any()).
				Return(nil, tc.err).
				Times(1)

			c, rec := newCallbackContext(successCallback)
			err := handler.MpesaCallback(c)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
			assert.NotContains(t, rec.Body.String(), "connection reset", "internal details stay in the logs")
		})
	}
}

func TestPaymentHandler_ReplayCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUC(ctrl)
	handler := NewPaymentHandler(mockUC)

	mockUC.EXPECT().
		HandleMpesaCallback(gomock.Any(), gomock.Any()).
		Return(&models.CallbackResult{
			CheckoutRequestID: "ws_CO_191220191020363925",
			Outcome:           models.OutcomeAlreadyProcessed,
		}, nil).
		Times(1)

	c, rec := newCallbackContext(successCallback)
	c.Set(middleware.ContextKeyUserID, "ops-1")

	err := handler.ReplayCallback(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Callback already processed", decodeResponse(t, rec).Message)
}

func TestPaymentHandler_GetPaymentStatus(t *testing.T) {
	updatedAt := time.Date(2019, 12, 19, 7, 21, 15, 0, time.UTC)

	testCases := []struct {
		name           string
		param          string
		setup          func(mockUC *mocks.MockPaymentUC)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "completed payment",
			param: "ws_CO_191220191020363925",
			setup: func(mockUC *mocks.MockPaymentUC) {
				mockUC.EXPECT().
					GetPaymentStatus(gomock.Any(), "ws_CO_191220191020363925").
					Return(&models.PaymentStatusView{
						CheckoutRequestID: "ws_CO_191220191020363925",
						TransactionID:     "txn-1",
						OrderID:           "order-1",
						Status:            models.TransactionCompleted,
						ReceiptNumber:     "NLJ7RT61SV",
						UpdatedAt:         updatedAt,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"receipt_number":"NLJ7RT61SV"`,
		},
		{
			name:  "unknown payment",
			param: "ws_CO_missing",
			setup: func(mockUC *mocks.MockPaymentUC) {
				mockUC.EXPECT().
					GetPaymentStatus(gomock.Any(), "ws_CO_missing").
					Return(nil, payment.ErrPaymentNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Payment not found",
		},
		{
			name:  "store failure",
			param: "ws_CO_broken",
			setup: func(mockUC *mocks.MockPaymentUC) {
				mockUC.EXPECT().
					GetPaymentStatus(gomock.Any(), "ws_CO_broken").
					Return(nil, errors.New("database is down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Failed to load payment status",
		},
		{
			name:           "blank id",
			param:          " ",
			setup:          func(mockUC *mocks.MockPaymentUC) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Checkout request ID is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockPaymentUC(ctrl)
			tc.setup(mockUC)
			handler := NewPaymentHandler(mockUC)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("checkoutRequestId")
			c.SetParamValues(tc.param)

			err := handler.GetPaymentStatus(c)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}
