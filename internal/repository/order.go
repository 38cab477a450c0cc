package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/app/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Order is the archived content of a cart at checkout
type Order struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Entries   []domain.CartEntry `json:"entries"`
	Count     int                `json:"count"`
	Total     decimal.Decimal    `json:"total"`
}

type OrderRepository interface {
	SaveOrder(ctx context.Context, order *Order) error
}

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepository{
		db: db,
	}
}

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id         UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	item_count INTEGER NOT NULL,
	total      NUMERIC(12, 2) NOT NULL,
	entries    JSONB NOT NULL
)`

// EnsureSchema creates the orders table when it is missing
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, createOrdersTable); err != nil {
		return fmt.Errorf("failed to create orders table: %w", err)
	}
	return nil
}

func (r *orderRepository) SaveOrder(ctx context.Context, order *Order) error {
	entries, err := json.Marshal(order.Entries)
	if err != nil {
		return fmt.Errorf("failed to encode order entries: %w", err)
	}

	query := `
	INSERT INTO orders (id, created_at, item_count, total, entries)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO NOTHING`
	_, err = r.db.Exec(ctx, query, order.ID, order.CreatedAt, order.Count, order.Total.StringFixed(2), entries)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	return nil
}

type nopOrderRepository struct{}

// NewNopOrderRepository is used when the order archive is disabled
func NewNopOrderRepository() OrderRepository {
	return nopOrderRepository{}
}

func (nopOrderRepository) SaveOrder(_ context.Context, order *Order) error {
	log.Debugf("Order %s not archived: database disabled", order.ID)
	return nil
}
