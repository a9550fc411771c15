package seed

import (
	"context"
	"fmt"

	"foodexpress/internal/domain"
	"github.com/shopspring/decimal"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type productSeed struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
}

// Menu is the demo catalog, keyed by category name.
var Menu = map[string][]productSeed{
	"Pizza": {
		{Name: "Margherita", Description: "Tomato, mozzarella, basil", Price: "10.50"},
		{Name: "Pepperoni", Description: "Tomato, mozzarella, pepperoni", Price: "12.00"},
	},
	"Sushi": {
		{Name: "California roll", Description: "Crab, avocado, cucumber", Price: "8.90"},
		{Name: "Salmon nigiri", Description: "Two pieces", Price: "4.50"},
	},
	"Drinks": {
		{Name: "Cola", Description: "0.5 l", Price: "2.00"},
		{Name: "Lemonade", Description: "Homemade, 0.4 l", Price: "3.20"},
	},
}

var menuOrder = []string{"Pizza", "Sushi", "Drinks"}

// Apply inserts the demo catalog for manual testing. It is idempotent because
// both writers upsert by name.
func Apply(ctx context.Context, categories CategoryWriter, products ProductWriter) error {
	for _, name := range menuOrder {
		cat, err := categories.Upsert(ctx, domain.Category{Name: name})
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", name, err)
		}
		for _, p := range Menu[name] {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return fmt.Errorf("price of %s: %w", p.Name, err)
			}
			_, err = products.Upsert(ctx, domain.Product{
				Name:        p.Name,
				Description: p.Description,
				Price:       price,
				ImageURL:    p.ImageURL,
				CategoryID:  cat.ID,
			})
			if err != nil {
				return fmt.Errorf("upsert product %s: %w", p.Name, err)
			}
		}
	}
	return nil
}
