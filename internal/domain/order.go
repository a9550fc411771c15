package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderAccepted OrderStatus = "accepted"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:  {OrderAccepted: true},
	OrderAccepted: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Terminal reports whether no further transitions exist from s.
func (s OrderStatus) Terminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

// OrderItem is a frozen copy of a cart line taken when the order was placed.
type OrderItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// CourierStep is one milestone of the simulated delivery.
type CourierStep struct {
	Step      string    `json:"step"`
	Timestamp time.Time `json:"timestamp"`
}

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	DeliveryAddress string          `json:"deliveryAddress"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	Items           []OrderItem     `json:"items"`
	CourierPath     []CourierStep   `json:"courierPath,omitempty"`
}

// OrderTracking is the caller-visible status of an order. CourierPath is only
// populated once the order is accepted.
type OrderTracking struct {
	OrderID     int64         `json:"orderId"`
	Status      OrderStatus   `json:"status"`
	CourierPath []CourierStep `json:"courierPath,omitempty"`
}

// Tracking projects an order onto its caller-visible status.
func (o Order) Tracking() OrderTracking {
	t := OrderTracking{OrderID: o.ID, Status: o.Status}
	if o.Status == OrderAccepted {
		t.CourierPath = o.CourierPath
	}
	return t
}
