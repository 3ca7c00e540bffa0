// Package orders looks up order summaries for the chat router.
package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-assistant/internal/common/logger"
	"food-assistant/internal/models"
)

var ErrOrderLookupFailed = errors.New("ORDER_LOOKUP_FAILED")

// Repository finds orders. Both lookups return (nil, nil) when nothing matches.
type Repository interface {
	FindOrderByID(ctx context.Context, id string) (*models.OrderSummary, error)
	FindLatestOrderForUser(ctx context.Context, userID string) (*models.OrderSummary, error)
}

const (
	orderColumns = `id, user_id, status, payment, amount, COALESCE(address, ''), created_at`

	findOrderByIDQuery   = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	findLatestOrderQuery = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	findOrderItemsQuery  = `SELECT name, quantity FROM order_items WHERE order_id = $1 ORDER BY position`
)

// PostgresRepository reads orders and their line items from Postgres.
type PostgresRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresRepository(db *sql.DB, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "orders.postgres"}),
	}
}

func (r *PostgresRepository) FindOrderByID(ctx context.Context, id string) (*models.OrderSummary, error) {
	return r.findOne(ctx, findOrderByIDQuery, id)
}

func (r *PostgresRepository) FindLatestOrderForUser(ctx context.Context, userID string) (*models.OrderSummary, error) {
	return r.findOne(ctx, findLatestOrderQuery, userID)
}

func (r *PostgresRepository) findOne(ctx context.Context, query, arg string) (*models.OrderSummary, error) {
	var o models.OrderSummary
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.UserID, &o.Status, &o.Payment, &o.Amount, &o.Address, &o.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailed, err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	r.logger.Debug("order loaded", map[string]interface{}{"orderId": o.ID, "items": len(items)})
	return &o, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, findOrderItemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailed, err)
	}
	defer rows.Close()

	var items []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.Name, &line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailed, err)
		}
		items = append(items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailed, err)
	}
	return items, nil
}
