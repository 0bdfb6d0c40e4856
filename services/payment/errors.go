package payment

import "errors"

var (
	// ErrInvalidCallback is returned for callbacks without a checkout request id
	ErrInvalidCallback = errors.New("invalid callback payload")
	// ErrPaymentNotFound is returned when no transaction matches a checkout request id
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInsufficientStock aborts a merch settlement that would oversell a product
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductNotFound aborts a merch settlement that references an unknown product
	ErrProductNotFound = errors.New("product not found")
)
