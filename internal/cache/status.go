// Package cache keeps terminal order statuses in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodexpress/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyOrderStatus = "order_status:%d:%d"

// NewClient connects to Redis at addr and verifies the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// OrderStatus is a read-through cache for order tracking. A nil *OrderStatus
// or one without a client never hits and never stores.
type OrderStatus struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewOrderStatus(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *OrderStatus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderStatus{rdb: rdb, ttl: ttl, logger: logger}
}

func orderStatusKey(userID, orderID int64) string {
	return fmt.Sprintf(keyOrderStatus, userID, orderID)
}

// Get returns the cached tracking. Redis errors are logged and reported as a miss.
func (c *OrderStatus) Get(ctx context.Context, userID, orderID int64) (*domain.OrderTracking, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, orderStatusKey(userID, orderID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("status cache get", zap.Int64("order_id", orderID), zap.Error(err))
		}
		return nil, false
	}
	var t domain.OrderTracking
	if err := json.Unmarshal(b, &t); err != nil {
		c.logger.Warn("status cache decode", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, false
	}
	return &t, true
}

// Set stores t when its status is terminal.
func (c *OrderStatus) Set(ctx context.Context, userID int64, t domain.OrderTracking) {
	if c == nil || c.rdb == nil || !t.Status.Terminal() {
		return
	}
	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, orderStatusKey(userID, t.OrderID), b, c.ttl).Err(); err != nil {
		c.logger.Warn("status cache set", zap.Int64("order_id", t.OrderID), zap.Error(err))
	}
}
