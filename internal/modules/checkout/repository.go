package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodtruck-ordering/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the order repository.
type RepositoryInterface interface {
	Create(ctx context.Context, userID string, req models.CreateOrderRequest, totals models.OrderTotals) (*models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByUserID(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error)
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new order repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Create inserts a new order. Items and the delivery address are stored as
// JSONB snapshots so the order survives later menu or address edits.
func (r *Repository) Create(ctx context.Context, userID string, req models.CreateOrderRequest, totals models.OrderTotals) (*models.Order, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder marshal items: %w", err)
	}
	address, err := json.Marshal(req.DeliveryAddress)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder marshal address: %w", err)
	}

	order := &models.Order{
		ID:               uuid.New().String(),
		UserID:           userID,
		Status:           "pending",
		Items:            req.Items,
		DeliveryAddress:  req.DeliveryAddress,
		Totals:           totals,
		EstimatedArrival: req.Estimate.EstimatedArrival,
	}

	query := `
		INSERT INTO orders (id, user_id, status, items, delivery_address, subtotal, tax, delivery_fee, total, estimated_arrival)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		order.ID, userID, order.Status, items, address,
		totals.Subtotal, totals.Tax, totals.DeliveryFee, totals.Total,
		order.EstimatedArrival,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: %w", err)
	}

	return order, nil
}

// FindByID retrieves a single order.
func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `
		SELECT id, user_id, status, items, delivery_address, subtotal, tax, delivery_fee, total, estimated_arrival, created_at, updated_at
		FROM orders
		WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return order, nil
}

// ListByUserID returns a page of the user's orders plus the total count.
func (r *Repository) ListByUserID(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID count: %w", err)
	}

	query := `
		SELECT id, user_id, status, items, delivery_address, subtotal, tax, delivery_fee, total, estimated_arrival, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.ListByUserID scan: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID rows: %w", err)
	}
	return orders, total, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	var items, address []byte
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&items,
		&address,
		&order.Totals.Subtotal,
		&order.Totals.Tax,
		&order.Totals.DeliveryFee,
		&order.Totals.Total,
		&order.EstimatedArrival,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal(address, &order.DeliveryAddress); err != nil {
		return nil, fmt.Errorf("unmarshal address: %w", err)
	}
	return order, nil
}
