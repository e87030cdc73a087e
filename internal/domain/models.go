package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one catalog entry, read fresh from the external sheet.
// Price is already rounded to 2 decimals; the resolver only hands out
// entries that are active with a strictly positive price.
type Product struct {
	ID          string
	Name        string
	Description string
	Size        string
	Option      string
	Price       decimal.Decimal
	Images      []string
	DelayMin    string
	DelayMax    string
	Featured    bool
	Active      bool
	Categories  []string
}

// CartLine is a client-supplied item reference. The ID is untrusted and
// must resolve against the catalog; the claimed quantity goes through
// Quantity's coercion rules. The client never supplies a price.
type CartLine struct {
	ID       string   `json:"id"`
	Quantity Quantity `json:"quantity"`
}

// PricedLine is a cart line after server-side resolution: authoritative
// unit price from the catalog and the extended total for the line.
type PricedLine struct {
	ID        string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderEvent is an audit record of an order lifecycle step. Write-only:
// the payment flow never reads these back.
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   string
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}
