package constants

// Redis key formats
const (
	KeyPaymentStatus = "payment:status:%s" // Format: payment:status:{checkout_request_id}
)
