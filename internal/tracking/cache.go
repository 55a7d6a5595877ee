// Package tracking serves customer order lookups by order number and keeps a
// small cache of recent orders to fall back on when the store is down.
package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wichananm65/arix-backend/internal/order"
)

// Cache remembers recently written orders.
type Cache interface {
	Remember(ctx context.Context, ord order.Order) error
	// Lookup reports ok=false when the order is not cached.
	Lookup(ctx context.Context, orderNo string) (ord order.Order, ok bool, err error)
}

const defaultMemoryCapacity = 500

// MemoryCache keeps the most recent orders in process, evicting the oldest
// insertion once capacity is reached.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	orders   map[string]order.Order
	keys     []string
}

func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryCache{capacity: capacity, orders: map[string]order.Order{}}
}

func (c *MemoryCache) Remember(_ context.Context, ord order.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.orders[ord.OrderNo]; !exists {
		c.keys = append(c.keys, ord.OrderNo)
		if len(c.keys) > c.capacity {
			delete(c.orders, c.keys[0])
			c.keys = c.keys[1:]
		}
	}
	c.orders[ord.OrderNo] = ord
	return nil
}

func (c *MemoryCache) Lookup(_ context.Context, orderNo string) (order.Order, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ord, ok := c.orders[orderNo]
	return ord, ok, nil
}

// RedisCache stores orders as JSON under arix:order:<orderNo> with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) key(orderNo string) string {
	return "arix:order:" + orderNo
}

func (c *RedisCache) Remember(ctx context.Context, ord order.Order) error {
	data, err := json.Marshal(ord)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(ord.OrderNo), data, c.ttl).Err()
}

func (c *RedisCache) Lookup(ctx context.Context, orderNo string) (order.Order, bool, error) {
	data, err := c.client.Get(ctx, c.key(orderNo)).Bytes()
	if errors.Is(err, redis.Nil) {
		return order.Order{}, false, nil
	}
	if err != nil {
		return order.Order{}, false, err
	}
	var ord order.Order
	if err := json.Unmarshal(data, &ord); err != nil {
		return order.Order{}, false, err
	}
	return ord, true, nil
}
