package cart

import (
	"context"
	"errors"
	"math"

	"foodexpress/internal/domain"
	cartrepo "foodexpress/internal/repository/cart"
)

// maxQuantity matches the INTEGER quantity column.
const maxQuantity = math.MaxInt32

type Service struct {
	repo     cartrepo.Repository
	products productGetter
}

type productGetter interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// AddInput is the body of an add-to-cart request. Quantity defaults to 1.
type AddInput struct {
	ProductID int64 `json:"productId"`
	Quantity  *int  `json:"quantity"`
}

// UpdateInput is the body of a cart update request. Both fields are required.
type UpdateInput struct {
	CartItemID *int64 `json:"cartItemId"`
	Quantity   *int   `json:"quantity"`
}

func (s *Service) View(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add merges quantity of a product into the user's cart.
func (s *Service) Add(ctx context.Context, userID int64, in AddInput) error {
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if in.ProductID == 0 || qty < 1 {
		return domain.Validation("invalid data: productId is required and quantity must be at least 1")
	}
	if qty > maxQuantity {
		return domain.Validation("invalid data: quantity is too large")
	}
	if _, err := s.products.Get(ctx, in.ProductID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, in.ProductID, qty)
}

// Update sets an absolute quantity on a cart item. A quantity below 1 removes it.
func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) error {
	if in.CartItemID == nil || in.Quantity == nil {
		return domain.Validation("invalid data: cartItemId and quantity are required")
	}
	if *in.Quantity > maxQuantity {
		return domain.Validation("invalid data: quantity is too large")
	}
	var err error
	if *in.Quantity < 1 {
		err = s.repo.Remove(ctx, userID, *in.CartItemID)
	} else {
		err = s.repo.SetQuantity(ctx, userID, *in.CartItemID, *in.Quantity)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("cart item not found")
	}
	return err
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}
