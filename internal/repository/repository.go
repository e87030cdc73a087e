package repository

import (
	"context"

	"github.com/emycrochet/storefront-api/internal/domain"
)

// EventRecorder journals order lifecycle events. Recording is
// best-effort: callers log failures and move on, and nothing in the
// payment flow ever reads the journal back.
type EventRecorder interface {
	Record(ctx context.Context, event *domain.OrderEvent) error
	Close() error
}

// NoopRecorder discards events. Used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder {
	return &NoopRecorder{}
}

func (r *NoopRecorder) Record(ctx context.Context, event *domain.OrderEvent) error {
	return nil
}

func (r *NoopRecorder) Close() error {
	return nil
}
