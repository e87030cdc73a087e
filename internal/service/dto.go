package service

import "github.com/emycrochet/storefront-api/internal/domain"

// BeginOrderRequest is the storefront's create-order payload. Items are
// references only; all pricing happens server-side.
type BeginOrderRequest struct {
	Items []domain.CartLine `json:"items"`
}

// BeginOrderResponse carries the provider's opaque order handle back to
// the storefront, which uses it to drive buyer approval and capture.
type BeginOrderResponse struct {
	ID string `json:"id"`
}

// FinalizeOrderRequest names the provider order to capture.
type FinalizeOrderRequest struct {
	OrderID string `json:"orderID"`
}
