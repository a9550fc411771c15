package product

import (
	"context"
	"errors"

	"foodexpress/internal/domain"
	productrepo "foodexpress/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns all products, or those of categoryID when set. An unknown
// category yields an empty list.
func (s *Service) List(ctx context.Context, categoryID *int64) ([]domain.Product, error) {
	return s.repo.List(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("product not found")
	}
	return p, err
}
