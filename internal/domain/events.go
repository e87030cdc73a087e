package domain

// Order lifecycle event types recorded in the audit journal.
const (
	EventOrderCreated  = "order_created"
	EventOrderCaptured = "order_captured"
	EventOrderFailed   = "order_failed"
)
