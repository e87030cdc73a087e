package errors

import "fmt"

// ErrEmptyOrder is returned when an order request carries no items.
type ErrEmptyOrder struct{}

func (e *ErrEmptyOrder) Error() string {
	return "order contains no items"
}

// ErrUnknownItem is returned when a cart line references an item that is
// missing from the catalog, inactive, or has no valid positive price.
type ErrUnknownItem struct {
	ID string
}

func (e *ErrUnknownItem) Error() string {
	return fmt.Sprintf("unknown or invalid item: %s", e.ID)
}

// ErrCatalogUnavailable is returned when the catalog source cannot be
// fetched or parsed. Pricing fails closed: no provider call is made.
type ErrCatalogUnavailable struct {
	Err error
}

func (e *ErrCatalogUnavailable) Error() string {
	return fmt.Sprintf("catalog unavailable: %v", e.Err)
}

func (e *ErrCatalogUnavailable) Unwrap() error {
	return e.Err
}

// ErrPaymentAuth is returned when the provider rejects the
// client-credentials authentication step.
type ErrPaymentAuth struct {
	Detail string
}

func (e *ErrPaymentAuth) Error() string {
	return fmt.Sprintf("payment provider auth failed: %s", e.Detail)
}

// ErrPaymentCreate is returned when the provider rejects order creation.
// Detail carries the provider's raw diagnostic; treat it as internal, not
// as user-facing copy.
type ErrPaymentCreate struct {
	Detail string
}

func (e *ErrPaymentCreate) Error() string {
	return fmt.Sprintf("payment provider create failed: %s", e.Detail)
}

// ErrPaymentCapture is returned when the provider rejects a capture,
// including double-capture of an already finalized order handle.
type ErrPaymentCapture struct {
	Detail string
}

func (e *ErrPaymentCapture) Error() string {
	return fmt.Sprintf("payment provider capture failed: %s", e.Detail)
}
