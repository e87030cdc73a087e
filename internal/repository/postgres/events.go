package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "github.com/lib/pq"

	"github.com/emycrochet/storefront-api/internal/config"
	"github.com/emycrochet/storefront-api/internal/domain"
)

// NewConnection opens the event journal database
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

type eventRecorder struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventRecorder creates a Postgres-backed order event journal
func NewEventRecorder(db *sql.DB, logger *zap.Logger) *eventRecorder {
	return &eventRecorder{
		db:     db,
		logger: logger,
	}
}

func (r *eventRecorder) Record(ctx context.Context, event *domain.OrderEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	data, err := json.Marshal(event.EventData)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	query := `
		INSERT INTO order_events (id, order_id, event_type, event_data)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, event.ID, event.OrderID, event.EventType, data); err != nil {
		r.logger.Error("Failed to insert order event", zap.Error(err))
		return err
	}

	return nil
}

func (r *eventRecorder) Close() error {
	return r.db.Close()
}
