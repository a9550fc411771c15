package order

import (
	"context"

	"foodexpress/internal/domain"
)

// BuildFunc turns the locked cart lines into the order to insert.
// Returning an error aborts the checkout and leaves the cart untouched.
type BuildFunc func(lines []domain.CartLine) (domain.Order, error)

type Repository interface {
	// Checkout drains the user's cart into a new pending order in one transaction.
	Checkout(ctx context.Context, userID int64, build BuildFunc) (*domain.Order, error)
	GetByID(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	// Accept moves a pending order to accepted and stores its courier path.
	// It returns *domain.StatusMismatchError when the order is not pending.
	Accept(ctx context.Context, userID, orderID int64, path []domain.CourierStep) (*domain.Order, error)
}
