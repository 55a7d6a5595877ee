package product

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrInvalidID = errors.New("invalid product ID format")
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	// Update replaces the stored record with p (matched by p.ID).
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
	// Reset replaces all products with the provided list (used for dev / seeding)
	Reset(ctx context.Context, products []Product) error
}

// ValidID reports whether id has the shape every store uses for product IDs.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && id != ""
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.storage = append(r.storage, p)
	}
	return r
}

func (r *InMemoryRepository) List(_ context.Context, f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if Matches(p, f) {
			out = append(out, clone(p))
		}
	}
	SortProducts(out, f.Sort)
	return truncate(out, f.Limit), nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return clone(p), nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.storage = append(r.storage, clone(p))
	return p, nil
}

func (r *InMemoryRepository) Update(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == p.ID {
			r.storage[i] = clone(p)
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Reset replaces the whole in-memory storage with the provided products.
func (r *InMemoryRepository) Reset(_ context.Context, products []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.storage = append(r.storage, clone(p))
	}
	return nil
}

// Matches applies a listing filter in memory. Inactive products never match.
func Matches(p Product, f Filter) bool {
	if !p.IsActive {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Anime), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	if f.Anime != "" && p.Anime != f.Anime {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.IsNew && !p.IsNew {
		return false
	}
	if f.OnSale && !p.OnSale() {
		return false
	}
	return true
}

// SortProducts orders items in place by one of the Sort* keys; unknown keys
// keep insertion order.
func SortProducts(items []Product, key string) {
	var less func(a, b Product) bool
	switch key {
	case SortPriceLow:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortName:
		less = func(a, b Product) bool { return a.Name < b.Name }
	case SortAnime:
		less = func(a, b Product) bool { return a.Anime < b.Anime }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func truncate(items []Product, limit int) []Product {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func clone(p Product) Product {
	p.Sizes = append([]string{}, p.Sizes...)
	return p
}
