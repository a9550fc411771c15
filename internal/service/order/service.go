package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodexpress/internal/domain"
	orderrepo "foodexpress/internal/repository/order"
	"go.uber.org/zap"
)

// StatusCache stores order tracking that can no longer change.
type StatusCache interface {
	Get(ctx context.Context, userID, orderID int64) (*domain.OrderTracking, bool)
	Set(ctx context.Context, userID int64, t domain.OrderTracking)
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64, int64) (*domain.OrderTracking, bool) { return nil, false }
func (noopCache) Set(context.Context, int64, domain.OrderTracking)                {}

// Service runs the order factory and the order lifecycle.
type Service struct {
	repo   orderrepo.Repository
	cache  StatusCache
	logger *zap.Logger
	now    func() time.Time
}

func New(repo orderrepo.Repository, cache StatusCache, logger *zap.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// Create drains the user's cart into a new pending order.
func (s *Service) Create(ctx context.Context, userID int64, deliveryAddress string) (*domain.Order, error) {
	address := strings.TrimSpace(deliveryAddress)
	if address == "" {
		return nil, domain.Validation("delivery address is required")
	}
	o, err := s.repo.Checkout(ctx, userID, func(lines []domain.CartLine) (domain.Order, error) {
		if len(lines) == 0 {
			return domain.Order{}, domain.Validation("cart is empty")
		}
		return domain.Order{
			UserID:          userID,
			Status:          domain.OrderPending,
			DeliveryAddress: address,
			DeliveryFee:     DeliveryFee(Subtotal(lines)),
			Items:           snapshotItems(lines),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order created",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", o.ID),
		zap.String("delivery_fee", o.DeliveryFee.StringFixed(2)))
	return o, nil
}

// Pay accepts a pending order and returns its courier schedule.
func (s *Service) Pay(ctx context.Context, userID, orderID int64) ([]domain.CourierStep, error) {
	path := CourierSchedule(s.now())
	o, err := s.repo.Accept(ctx, userID, orderID, path)
	if err != nil {
		var mismatch *domain.StatusMismatchError
		switch {
		case errors.As(err, &mismatch):
			return nil, domain.Conflictf("cannot pay order in status %s", mismatch.Current)
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NotFound("order not found")
		}
		return nil, err
	}
	s.cache.Set(ctx, userID, o.Tracking())
	s.logger.Info("order paid", zap.Int64("user_id", userID), zap.Int64("order_id", orderID))
	return o.CourierPath, nil
}

// Status returns the caller-visible status of an order owned by userID.
func (s *Service) Status(ctx context.Context, userID, orderID int64) (*domain.OrderTracking, error) {
	if t, ok := s.cache.Get(ctx, userID, orderID); ok {
		return t, nil
	}
	o, err := s.repo.GetByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("order not found")
		}
		return nil, err
	}
	t := o.Tracking()
	if t.Status.Terminal() {
		s.cache.Set(ctx, userID, t)
	}
	return &t, nil
}
