package constants

// NATS Subjects
const (
	// Payment events
	SubjectPaymentCompleted = "payment.completed"
	SubjectPaymentFailed    = "payment.failed"
)
