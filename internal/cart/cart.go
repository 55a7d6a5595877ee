// Package cart implements the shopping cart aggregate, its persistence
// adapters and the session cart HTTP surface.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/arix-backend/internal/product"
	"go.uber.org/zap"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Item is one cart line. Price fields are a snapshot taken when the line was
// first added.
type Item struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Anime         string   `json:"anime,omitempty"`
	Category      string   `json:"category,omitempty"`
	Size          string   `json:"size"`
	Quantity      int      `json:"quantity"`
}

type State struct {
	Items      []Item  `json:"items"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

// EmptyState is a cart with no lines.
func EmptyState() State {
	return State{Items: []Item{}}
}

func (s State) index(productID, size string) int {
	for i, it := range s.Items {
		if it.ProductID == productID && it.Size == size {
			return i
		}
	}
	return -1
}

// recalculated returns s with totals derived from its lines.
func (s State) recalculated() State {
	count := 0
	total := decimal.Zero
	for _, it := range s.Items {
		count += it.Quantity
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	s.TotalItems = count
	s.TotalPrice = total.Round(2).InexactFloat64()
	return s
}

func (s State) clone() State {
	s.Items = append([]Item{}, s.Items...)
	return s
}

// Cart is a single-owner aggregate bound to a storage key. It is not safe
// for concurrent use; Sessions serializes access per key.
type Cart struct {
	key   string
	store Store
	state State
}

// Load reads the cart stored under key. Missing or unreadable state yields
// an empty cart; the failure is logged, not returned.
func Load(ctx context.Context, store Store, key string, log *zap.Logger) *Cart {
	st, err := store.Load(ctx, key)
	if err != nil {
		if log != nil {
			log.Warn("discarding unreadable cart", zap.String("cart", key), zap.Error(err))
		}
		st = EmptyState()
	}
	if st.Items == nil {
		st.Items = []Item{}
	}
	return &Cart{key: key, store: store, state: st.recalculated()}
}

func (c *Cart) State() State { return c.state.clone() }

// Add merges into the (productId, size) line when present, otherwise appends
// a new line priced from p as it is now.
func (c *Cart) Add(ctx context.Context, p product.Product, size string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	next := c.state.clone()
	if i := next.index(p.ID, size); i >= 0 {
		next.Items[i].Quantity += quantity
	} else {
		next.Items = append(next.Items, Item{
			ProductID:     p.ID,
			Name:          p.Name,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			Image:         p.FrontImage(),
			Anime:         p.Anime,
			Category:      p.Category,
			Size:          size,
			Quantity:      quantity,
		})
	}
	return c.commit(ctx, next)
}

// UpdateQuantity sets the line quantity; q <= 0 removes the line.
func (c *Cart) UpdateQuantity(ctx context.Context, productID, size string, q int) error {
	if q <= 0 {
		return c.Remove(ctx, productID, size)
	}
	next := c.state.clone()
	if i := next.index(productID, size); i >= 0 {
		next.Items[i].Quantity = q
	}
	return c.commit(ctx, next)
}

func (c *Cart) Remove(ctx context.Context, productID, size string) error {
	next := State{Items: make([]Item, 0, len(c.state.Items))}
	for _, it := range c.state.Items {
		if it.ProductID == productID && it.Size == size {
			continue
		}
		next.Items = append(next.Items, it)
	}
	return c.commit(ctx, next)
}

func (c *Cart) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return err
	}
	c.state = EmptyState()
	return nil
}

// Item looks up a line without side effects.
func (c *Cart) Item(productID, size string) (Item, bool) {
	if i := c.state.index(productID, size); i >= 0 {
		return c.state.Items[i], true
	}
	return Item{}, false
}

// commit persists next and adopts it only once the write succeeded.
func (c *Cart) commit(ctx context.Context, next State) error {
	next = next.recalculated()
	if err := c.store.Save(ctx, c.key, next); err != nil {
		return err
	}
	c.state = next
	return nil
}
