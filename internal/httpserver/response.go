package httpserver

import (
	"time"

	"foodexpress/internal/domain"
	"github.com/shopspring/decimal"
)

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	res := userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
	if u.FullName != "" {
		name := u.FullName
		res.FullName = &name
	}
	return res
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	CategoryID  int64   `json:"categoryId"`
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: optional(p.Description),
			Price:       money(p.Price),
			ImageURL:    optional(p.ImageURL),
			CategoryID:  p.CategoryID,
		})
	}
	return out
}

type cartLineResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func toCartResponse(lines []domain.CartLine) []cartLineResponse {
	out := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Price:       money(l.Price),
			Quantity:    l.Quantity,
		})
	}
	return out
}

type createOrderResponse struct {
	Msg         string             `json:"msg"`
	OrderID     int64              `json:"orderId"`
	DeliveryFee float64            `json:"deliveryFee"`
	Status      domain.OrderStatus `json:"status"`
}

type payOrderResponse struct {
	Msg           string               `json:"msg"`
	OrderID       int64                `json:"orderId"`
	DeliverySteps []domain.CourierStep `json:"deliverySteps"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	UserID      int64  `json:"userId"`
}

// money renders a NUMERIC(10,2) amount as a JSON number.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
