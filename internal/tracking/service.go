package tracking

import (
	"context"
	"errors"

	"github.com/wichananm65/arix-backend/internal/order"
	"go.uber.org/zap"
)

// OrderReader is the subset of the order service tracking needs.
type OrderReader interface {
	Get(ctx context.Context, orderNo string) (order.Order, error)
}

type Service struct {
	orders OrderReader
	cache  Cache
	log    *zap.Logger
}

func NewService(orders OrderReader, cache Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{orders: orders, cache: cache, log: log}
}

// Lookup reads an order from the store. Only when the store fails for a
// reason other than "not found" is the recent-orders cache consulted.
func (s *Service) Lookup(ctx context.Context, orderNo string) (order.Order, error) {
	ord, err := s.orders.Get(ctx, orderNo)
	if err == nil || errors.Is(err, order.ErrNotFound) || s.cache == nil {
		return ord, err
	}

	cached, ok, cacheErr := s.cache.Lookup(ctx, orderNo)
	if cacheErr != nil {
		s.log.Warn("tracking cache lookup failed", zap.String("order_no", orderNo), zap.Error(cacheErr))
		return order.Order{}, err
	}
	if !ok {
		return order.Order{}, err
	}
	s.log.Warn("order store unavailable, serving cached order",
		zap.String("order_no", orderNo), zap.Error(err))
	return cached, nil
}
