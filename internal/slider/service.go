package slider

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// Active returns the slides shown on the homepage.
func (s *Service) Active(ctx context.Context) ([]Slider, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) All(ctx context.Context) ([]Slider, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) GetByID(ctx context.Context, id string) (Slider, error) {
	if !ValidID(id) {
		return Slider{}, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, sl Slider) (Slider, error) {
	now := s.now()
	sl.ID = uuid.NewString()
	sl.CreatedAt = now
	sl.UpdatedAt = now
	return s.repo.Create(ctx, sl)
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (Slider, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Slider{}, err
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

// Reorder applies every position concurrently. Updates are independent: the
// first error is returned and updates that already landed stay applied.
// The result follows the order of positions.
func (s *Service) Reorder(ctx context.Context, positions []Position) ([]Slider, error) {
	for _, p := range positions {
		if !ValidID(p.ID) {
			return nil, ErrInvalidID
		}
	}

	at := s.now()
	out := make([]Slider, len(positions))
	var g errgroup.Group
	for i, p := range positions {
		g.Go(func() error {
			updated, err := s.repo.SetOrder(ctx, p.ID, p.Order, at)
			if err != nil {
				return err
			}
			out[i] = updated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
