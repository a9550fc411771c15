package cart

import (
	"context"

	"foodexpress/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	// Add merges quantity into the user's line for productID, creating it when absent.
	Add(ctx context.Context, userID, productID int64, quantity int) error
	// SetQuantity overwrites the quantity of a line owned by userID.
	SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}
