package paypal

// Wire types for the checkout v2 order API. Field names follow the
// provider's snake_case contract.

// Order is the create-order request payload.
type Order struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

type PurchaseUnit struct {
	Amount Amount `json:"amount"`
	Items  []Item `json:"items"`
}

type Amount struct {
	CurrencyCode string     `json:"currency_code"`
	Value        string     `json:"value"`
	Breakdown    *Breakdown `json:"breakdown,omitempty"`
}

// Breakdown itemizes the purchase unit amount. The provider verifies
// that amount.value equals the breakdown's item_total, so both must be
// built from the same rounded per-line values.
type Breakdown struct {
	ItemTotal Money `json:"item_total"`
}

type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// Item is one order line. Name and SKU are capped at 127 characters by
// the provider; Quantity is a string on the wire.
type Item struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	UnitAmount Money  `json:"unit_amount"`
	SKU        string `json:"sku"`
	Category   string `json:"category"`
}

// CategoryPhysicalGoods is the item category for everything this shop sells.
const CategoryPhysicalGoods = "PHYSICAL_GOODS"

// IntentCapture creates orders that are finalized with a later capture call.
const IntentCapture = "CAPTURE"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
