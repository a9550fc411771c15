package order

import (
	"github.com/shopspring/decimal"

	"foodexpress/internal/domain"
)

var (
	baseDeliveryFee = decimal.RequireFromString("5.99")
	deliveryFeeRate = decimal.RequireFromString("0.10")
)

// DeliveryFee is 5.99 plus 10% of the subtotal, rounded to cents.
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	return baseDeliveryFee.Add(subtotal.Mul(deliveryFeeRate)).Round(2)
}

// Subtotal sums price * quantity over the cart lines.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

func snapshotItems(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.ProductName,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
	}
	return items
}
