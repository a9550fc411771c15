package product

import (
	"context"
	"errors"

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

func (r *postgresRepo) List(ctx context.Context, categoryID *int64) ([]domain.Product, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), category_id
FROM products
WHERE $1::bigint IS NULL OR category_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CategoryID); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), category_id
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// Upsert inserts a product or updates the one with the same name in the same category.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, image_url, category_id)
VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5)
ON CONFLICT (category_id, name) DO UPDATE SET
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image_url = EXCLUDED.image_url
RETURNING id
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.Price, p.ImageURL, p.CategoryID).Scan(&res.ID)
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("name", p.Name), zap.Int64("category_id", p.CategoryID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: upserted", zap.String("name", res.Name), zap.Int64("id", res.ID))
	return &res, nil
}
