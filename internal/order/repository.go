package order

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrDuplicateOrderNo  = errors.New("duplicate order number")
	ErrVersionConflict   = errors.New("order was modified concurrently")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrInvalidStatus     = errors.New("invalid status")
)

// Repository defines persistence operations for orders. Orders are never
// deleted.
type Repository interface {
	// Create stores a new order; ErrDuplicateOrderNo when the order number
	// is already taken.
	Create(ctx context.Context, ord Order) error
	GetByOrderNo(ctx context.Context, orderNo string) (Order, error)
	// List returns matching orders, newest first.
	List(ctx context.Context, f ListFilter) ([]Order, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	// UpdateStatus sets status only when the stored version equals
	// expectedVersion, incrementing the version. ErrVersionConflict on
	// mismatch, ErrNotFound when the order does not exist.
	UpdateStatus(ctx context.Context, orderNo string, expectedVersion int, status Status, at time.Time) (Order, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: map[string]Order{}}
}

func (r *InMemoryRepository) Create(_ context.Context, ord Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[ord.OrderNo]; exists {
		return ErrDuplicateOrderNo
	}
	r.orders[ord.OrderNo] = cloneOrder(ord)
	return nil
}

func (r *InMemoryRepository) GetByOrderNo(_ context.Context, orderNo string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ord, ok := r.orders[orderNo]
	if !ok {
		return Order{}, ErrNotFound
	}
	return cloneOrder(ord), nil
}

func (r *InMemoryRepository) List(_ context.Context, f ListFilter) ([]Order, error) {
	f = f.normalized()
	r.mu.RLock()
	out := make([]Order, 0, len(r.orders))
	for _, ord := range r.orders {
		if matches(ord, f) {
			out = append(out, cloneOrder(ord))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *InMemoryRepository) CountByStatus(_ context.Context) (map[Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[Status]int{}
	for _, ord := range r.orders {
		counts[ord.Status]++
	}
	return counts, nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, orderNo string, expectedVersion int, status Status, at time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[orderNo]
	if !ok {
		return Order{}, ErrNotFound
	}
	if ord.Version != expectedVersion {
		return Order{}, ErrVersionConflict
	}
	ord.Status = status
	ord.Version++
	ord.UpdatedAt = at
	r.orders[orderNo] = ord
	return cloneOrder(ord), nil
}

func matches(ord Order, f ListFilter) bool {
	if f.Status != "" && ord.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(ord.OrderNo), q) ||
		strings.Contains(strings.ToLower(ord.Customer.FullName), q) ||
		strings.Contains(strings.ToLower(ord.Customer.Phone), q)
}

func cloneOrder(ord Order) Order {
	ord.Items = append([]Item(nil), ord.Items...)
	return ord
}
