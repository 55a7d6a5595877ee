package slider

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("slider not found")
	ErrInvalidID = errors.New("invalid slider ID format")
)

type Repository interface {
	// List returns sliders sorted by order; activeOnly hides inactive ones.
	List(ctx context.Context, activeOnly bool) ([]Slider, error)
	GetByID(ctx context.Context, id string) (Slider, error)
	Create(ctx context.Context, s Slider) (Slider, error)
	Update(ctx context.Context, s Slider) (Slider, error)
	Delete(ctx context.Context, id string) error
	// SetOrder changes a single slider's order and returns the stored record.
	SetOrder(ctx context.Context, id string, order int, at time.Time) (Slider, error)
}

func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// sortSliders orders by Order, then creation time for ties.
func sortSliders(items []Slider) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Slider
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: map[string]Slider{}}
}

func (r *InMemoryRepository) List(_ context.Context, activeOnly bool) ([]Slider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Slider, 0, len(r.items))
	for _, s := range r.items {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sortSliders(out)
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Slider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return Slider{}, ErrNotFound
	}
	return s, nil
}

func (r *InMemoryRepository) Create(_ context.Context, s Slider) (Slider, error) {
	r.mu.Lock()
	r.items[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

func (r *InMemoryRepository) Update(_ context.Context, s Slider) (Slider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; !ok {
		return Slider{}, ErrNotFound
	}
	r.items[s.ID] = s
	return s, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) SetOrder(_ context.Context, id string, order int, at time.Time) (Slider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return Slider{}, ErrNotFound
	}
	s.Order = order
	s.UpdatedAt = at
	r.items[id] = s
	return s, nil
}
