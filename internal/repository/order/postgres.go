package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodexpress/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id, user_id, status, created_at, delivery_address, delivery_fee, items, courier_path`

func (r *postgresRepo) Checkout(ctx context.Context, userID int64, build BuildFunc) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lines, err := lockCart(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	o, err := build(lines)
	if err != nil {
		return nil, err
	}

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	insert := `
INSERT INTO orders (user_id, status, delivery_address, delivery_fee, items, courier_path)
VALUES ($1, $2, $3, $4, $5, NULL)
RETURNING ` + orderColumns
	created, err := scanOrder(tx.QueryRow(ctx, insert, userID, domain.OrderPending, o.DeliveryAddress, o.DeliveryFee, itemsJSON))
	if err != nil {
		r.logger.Error("order repo: insert", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id = ANY($1)`, ids); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("order repo: checkout",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", created.ID),
		zap.Int("lines", len(lines)))
	return created, nil
}

func lockCart(ctx context.Context, tx pgx.Tx, userID int64) ([]domain.CartLine, error) {
	const q = `
SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.id ASC
FOR UPDATE OF ci
`
	rows, err := tx.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.Price, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	return scanOrder(r.pool.QueryRow(ctx, q, orderID, userID))
}

func (r *postgresRepo) Accept(ctx context.Context, userID, orderID int64, path []domain.CourierStep) (*domain.Order, error) {
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return nil, fmt.Errorf("encode courier path: %w", err)
	}

	q := `
UPDATE orders
SET status = $3, courier_path = $4
WHERE id = $1 AND user_id = $2 AND status = $5
RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, orderID, userID, domain.OrderAccepted, pathJSON, domain.OrderPending))
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var current domain.OrderStatus
	err = r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return nil, &domain.StatusMismatchError{Current: current}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var itemsJSON, pathJSON []byte
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt, &o.DeliveryAddress, &o.DeliveryFee, &itemsJSON, &pathJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items order_id=%d: %w", o.ID, err)
	}
	if len(pathJSON) > 0 {
		if err := json.Unmarshal(pathJSON, &o.CourierPath); err != nil {
			return nil, fmt.Errorf("decode courier path order_id=%d: %w", o.ID, err)
		}
	}
	return &o, nil
}
