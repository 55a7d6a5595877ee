package product

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	return s.repo.List(ctx, f)
}

// GetByID rejects malformed IDs before touching the store.
func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	if !ValidID(id) {
		return Product{}, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	now := s.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	return s.repo.Create(ctx, p)
}

// Update applies a partial patch; fields absent from the patch keep their
// stored values.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Product, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	next := patch.Apply(current)
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	return s.repo.Update(ctx, next)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(ctx context.Context, products []Product) ([]Product, error) {
	now := s.now()
	for i := range products {
		if !ValidID(products[i].ID) {
			products[i].ID = uuid.NewString()
		}
		if products[i].CreatedAt.IsZero() {
			products[i].CreatedAt = now
		}
		products[i].UpdatedAt = now
		if products[i].Sizes == nil {
			products[i].Sizes = []string{}
		}
	}
	if err := s.repo.Reset(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}
