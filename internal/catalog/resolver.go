package catalog

import (
	"github.com/emycrochet/storefront-api/internal/domain"
	"github.com/emycrochet/storefront-api/pkg/errors"
)

// Snapshot is one catalog read, immutable for the duration of a request.
type Snapshot struct {
	byID    map[string]*domain.Product
	ordered []*domain.Product
}

// NewSnapshot builds a snapshot from parsed products.
func NewSnapshot(products []*domain.Product) *Snapshot {
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Snapshot{byID: byID, ordered: products}
}

// Resolve maps an item identifier to its authoritative catalog entry.
// An entry resolves only if it exists, is active, and carries a strictly
// positive price; everything else is an unknown-or-invalid item. The
// caller's claims about price are never consulted.
func (s *Snapshot) Resolve(id string) (*domain.Product, error) {
	if id == "" {
		return nil, &errors.ErrUnknownItem{ID: id}
	}
	p, ok := s.byID[id]
	if !ok || !p.Active || !p.Price.IsPositive() {
		return nil, &errors.ErrUnknownItem{ID: id}
	}
	return p, nil
}

// Active returns the active products in sheet order, for the storefront
// product listing.
func (s *Snapshot) Active() []*domain.Product {
	out := make([]*domain.Product, 0, len(s.ordered))
	for _, p := range s.ordered {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// Len reports the total number of entries in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.ordered)
}
