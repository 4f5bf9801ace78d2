package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/balikhane/database"
	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

// sqliteOrderRepo, OrderRepository'nin SQLite implementasyonu.
type sqliteOrderRepo struct {
	db database.TxQuerier
}

// NewSQLiteOrderRepo, constructor.
func NewSQLiteOrderRepo(db database.TxQuerier) OrderRepository {
	return &sqliteOrderRepo{db: db}
}

func (r *sqliteOrderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, user_id, item_id, quantity, price, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ordered_at`

	err := r.db.QueryRowContext(ctx, query,
		order.ID,
		order.UserID,
		order.ItemID,
		order.Quantity,
		order.Price,
		order.Status,
	).Scan(&order.OrderedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *sqliteOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, user_id, item_id, quantity, price, status, ordered_at, delivered_at
		FROM orders WHERE id = ?`

	order := &models.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.ItemID, &order.Quantity,
		&order.Price, &order.Status, &order.OrderedAt, &order.DeliveredAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

func (r *sqliteOrderRepo) GetByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	query := `
		SELECT id, user_id, item_id, quantity, price, status, ordered_at, delivered_at
		FROM orders WHERE user_id = ? ORDER BY ordered_at DESC`

	return r.queryOrders(ctx, query, userID)
}

func (r *sqliteOrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, user_id, item_id, quantity, price, status, ordered_at, delivered_at
		FROM orders ORDER BY ordered_at DESC`

	return r.queryOrders(ctx, query)
}

func (r *sqliteOrderRepo) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	// delivered_at yalnızca teslimatta set edilir; başka status'a geri
	// dönülürse NULL'a çekilir.
	query := `
		UPDATE orders
		SET status = ?,
		    delivered_at = CASE WHEN ? = 'delivered' THEN CURRENT_TIMESTAMP ELSE NULL END
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// queryOrders, ortak satır tarama mantığı.
func (r *sqliteOrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.ItemID, &o.Quantity,
			&o.Price, &o.Status, &o.OrderedAt, &o.DeliveredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	return orders, nil
}
