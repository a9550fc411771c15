package product

import (
	"context"

	"foodexpress/internal/domain"
)

type Repository interface {
	// List returns every product, or only those of categoryID when it is set.
	List(ctx context.Context, categoryID *int64) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
