package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/arix-backend/internal/validation"
	"go.uber.org/zap"
)

// DefaultShippingFee is the flat fee added to every order.
const DefaultShippingFee = 80.0

// maxPlaceAttempts bounds order-number regeneration on collision.
const maxPlaceAttempts = 3

// ValidationError carries field-level messages for a rejected checkout.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout: %d field(s)", len(e.Fields))
}

// Recorder is told about every order written; the tracking cache
// implements it.
type Recorder interface {
	Remember(ctx context.Context, ord Order) error
}

type Options struct {
	ShippingFee float64
	// Permissive allows any status change instead of the forward chain.
	Permissive bool
}

// Service provides business logic for orders.
type Service struct {
	repo     Repository
	opts     Options
	log      *zap.Logger
	recorder Recorder
	newNo    func() (string, error)
	now      func() time.Time
}

func NewService(r Repository, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:  r,
		opts:  opts,
		log:   log,
		newNo: NewOrderNumber,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithRecorder attaches a recorder notified after successful writes.
func (s *Service) WithRecorder(rec Recorder) *Service {
	s.recorder = rec
	return s
}

func (s *Service) ShippingFee() float64 { return s.opts.ShippingFee }

// Place validates a checkout, recomputes totals and persists the order with
// status placed. Nothing is written when validation fails.
func (s *Service) Place(ctx context.Context, in Checkout) (Order, error) {
	if fields := validation.Struct(in); fields != nil {
		return Order{}, &ValidationError{Fields: fields}
	}

	items := in.items()
	totals := ComputeTotals(items, s.opts.ShippingFee)
	if in.Totals != nil && !totals.Agrees(*in.Totals) {
		return Order{}, &ValidationError{Fields: map[string]string{
			"totals": fmt.Sprintf("totals do not match items (expected subtotal %.2f, shipping %.2f, total %.2f)",
				totals.Subtotal, totals.Shipping, totals.Total),
		}}
	}

	orderType := in.OrderType
	if orderType == "" {
		orderType = TypeCart
	}
	now := s.now()
	ord := Order{
		ID:        uuid.NewString(),
		OrderType: orderType,
		Customer:  normalizeCustomer(in.Customer),
		Items:     items,
		Totals:    totals,
		Status:    StatusPlaced,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 1; ; attempt++ {
		no, err := s.newNo()
		if err != nil {
			return Order{}, fmt.Errorf("generate order number: %w", err)
		}
		ord.OrderNo = no
		err = s.repo.Create(ctx, ord)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateOrderNo) || attempt >= maxPlaceAttempts {
			return Order{}, err
		}
		s.log.Warn("order number collision, retrying", zap.String("order_no", no), zap.Int("attempt", attempt))
	}

	s.log.Info("order placed",
		zap.String("order_no", ord.OrderNo),
		zap.Int("items", totals.ItemsCount),
		zap.Float64("total", totals.Total))
	s.remember(ctx, ord)
	return ord, nil
}

func (s *Service) Get(ctx context.Context, orderNo string) (Order, error) {
	return s.repo.GetByOrderNo(ctx, strings.TrimSpace(orderNo))
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Order, error) {
	if f.Status != "" {
		if _, ok := ParseStatus(string(f.Status)); !ok {
			return nil, ErrInvalidStatus
		}
	}
	return s.repo.List(ctx, f.normalized())
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{ByStatus: make(map[Status]int, len(AllStatuses))}
	for _, status := range AllStatuses {
		st.ByStatus[status] = counts[status]
		st.Total += counts[status]
	}
	return st, nil
}

// SetStatus moves an order to a new status if the caller's view of the order
// (expectedVersion) is current and the transition is allowed. Setting the
// current status is a no-op that leaves the version untouched.
func (s *Service) SetStatus(ctx context.Context, orderNo string, to Status, expectedVersion int) (Order, error) {
	if _, ok := ParseStatus(string(to)); !ok {
		return Order{}, ErrInvalidStatus
	}
	current, err := s.repo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return Order{}, err
	}
	if current.Version != expectedVersion {
		return Order{}, ErrVersionConflict
	}
	if current.Status == to {
		return current, nil
	}
	if !CanTransition(current.Status, to, s.opts.Permissive) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, orderNo, expectedVersion, to, s.now())
	if err != nil {
		return Order{}, err
	}
	s.log.Info("order status changed",
		zap.String("order_no", orderNo),
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)),
		zap.Int("version", updated.Version))
	s.remember(ctx, updated)
	return updated, nil
}

func (s *Service) remember(ctx context.Context, ord Order) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Remember(ctx, ord); err != nil {
		s.log.Warn("could not cache order", zap.String("order_no", ord.OrderNo), zap.Error(err))
	}
}

func normalizeCustomer(c Customer) Customer {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.Join(strings.Fields(c.Phone), "")
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.PostalCode = strings.TrimSpace(c.PostalCode)
	c.Notes = strings.TrimSpace(c.Notes)
	return c
}
