package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/catalog"
	"github.com/emycrochet/storefront-api/internal/domain"
	"github.com/emycrochet/storefront-api/internal/paypal"
	"github.com/emycrochet/storefront-api/internal/repository"
	"github.com/emycrochet/storefront-api/pkg/errors"
)

// CatalogSource provides a fresh catalog snapshot per pricing request.
type CatalogSource interface {
	Fetch(ctx context.Context) (*catalog.Snapshot, error)
}

// Provider is the payment provider capability the orchestrator consumes.
type Provider interface {
	CreateOrder(ctx context.Context, order paypal.Order) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error)
}

// maxProviderField is the provider's limit on item name and sku length.
const maxProviderField = 127

type orderService struct {
	catalog  CatalogSource
	provider Provider
	events   repository.EventRecorder
	currency string
	logger   *zap.Logger
}

// NewOrderService creates the order orchestrator
func NewOrderService(
	cat CatalogSource,
	provider Provider,
	events repository.EventRecorder,
	currency string,
	logger *zap.Logger,
) *orderService {
	return &orderService{
		catalog:  cat,
		provider: provider,
		events:   events,
		currency: currency,
		logger:   logger,
	}
}

// BeginOrder re-derives an authoritative total from the client's item
// references and creates a provider order for it. The client never
// supplies a price; any line that fails to resolve aborts the whole
// request before the provider sees anything.
func (s *orderService) BeginOrder(ctx context.Context, req BeginOrderRequest) (*BeginOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, &errors.ErrEmptyOrder{}
	}

	snapshot, err := s.catalog.Fetch(ctx)
	if err != nil {
		return nil, &errors.ErrCatalogUnavailable{Err: err}
	}

	lines, total, err := s.priceLines(snapshot, req.Items)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(lines, total)
	orderID, err := s.provider.CreateOrder(ctx, order)
	if err != nil {
		s.recordEvent(ctx, "", domain.EventOrderFailed, map[string]interface{}{
			"stage": "create",
			"error": err.Error(),
		})
		return nil, err
	}

	s.recordEvent(ctx, orderID, domain.EventOrderCreated, map[string]interface{}{
		"total":    total.StringFixed(2),
		"currency": s.currency,
		"lines":    len(lines),
	})

	return &BeginOrderResponse{ID: orderID}, nil
}

// FinalizeOrder captures a previously created, buyer-approved provider
// order and relays the provider's result verbatim. The handle is not
// validated here; the provider rejects unknown or already-captured
// handles and that rejection is surfaced as a capture failure.
func (s *orderService) FinalizeOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order handle is required")
	}

	result, err := s.provider.CaptureOrder(ctx, orderID)
	if err != nil {
		s.recordEvent(ctx, orderID, domain.EventOrderFailed, map[string]interface{}{
			"stage": "capture",
			"error": err.Error(),
		})
		return nil, err
	}

	s.recordEvent(ctx, orderID, domain.EventOrderCaptured, nil)
	return result, nil
}

// priceLines resolves every cart line against the snapshot. Extended
// prices come from the already-rounded catalog unit price times the
// normalized quantity, so the sum and the per-line breakdown can never
// drift apart.
func (s *orderService) priceLines(snapshot *catalog.Snapshot, items []domain.CartLine) ([]domain.PricedLine, decimal.Decimal, error) {
	lines := make([]domain.PricedLine, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		entry, err := snapshot.Resolve(item.ID)
		if err != nil {
			return nil, decimal.Zero, err
		}

		qty := item.Quantity.Normalize()
		lineTotal := entry.Price.Mul(decimal.NewFromInt(int64(qty)))
		total = total.Add(lineTotal)

		name := entry.Name
		if name == "" {
			name = "Article"
		}

		lines = append(lines, domain.PricedLine{
			ID:        entry.ID,
			Name:      name,
			Quantity:  qty,
			UnitPrice: entry.Price,
			LineTotal: lineTotal,
		})
	}

	return lines, total, nil
}

func (s *orderService) buildOrder(lines []domain.PricedLine, total decimal.Decimal) paypal.Order {
	items := make([]paypal.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, paypal.Item{
			Name:     truncate(line.Name, maxProviderField),
			Quantity: strconv.Itoa(line.Quantity),
			UnitAmount: paypal.Money{
				CurrencyCode: s.currency,
				Value:        line.UnitPrice.StringFixed(2),
			},
			SKU:      truncate(line.ID, maxProviderField),
			Category: paypal.CategoryPhysicalGoods,
		})
	}

	value := total.StringFixed(2)
	return paypal.Order{
		Intent: paypal.IntentCapture,
		PurchaseUnits: []paypal.PurchaseUnit{
			{
				Amount: paypal.Amount{
					CurrencyCode: s.currency,
					Value:        value,
					Breakdown: &paypal.Breakdown{
						ItemTotal: paypal.Money{
							CurrencyCode: s.currency,
							Value:        value,
						},
					},
				},
				Items: items,
			},
		},
	}
}

// recordEvent journals best-effort; a dead journal never fails an order.
func (s *orderService) recordEvent(ctx context.Context, orderID, eventType string, data map[string]interface{}) {
	event := &domain.OrderEvent{
		OrderID:   orderID,
		EventType: eventType,
		EventData: data,
	}
	if err := s.events.Record(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
