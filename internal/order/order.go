package order

import "time"

// Order type values.
const (
	TypeCart   = "cart"
	TypeSingle = "single"
)

type Customer struct {
	FullName   string `json:"fullName" bson:"fullName" validate:"required"`
	Email      string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone" bson:"phone" validate:"required,phone"`
	Address    string `json:"address" bson:"address" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postalCode" validate:"required"`
	Notes      string `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Item is a line snapshot; it does not reference the live product.
type Item struct {
	ProductID     string   `json:"productId,omitempty" bson:"productId,omitempty"`
	Name          string   `json:"name" bson:"name"`
	Anime         string   `json:"anime,omitempty" bson:"anime,omitempty"`
	Category      string   `json:"category,omitempty" bson:"category,omitempty"`
	Size          string   `json:"size,omitempty" bson:"size,omitempty"`
	Price         float64  `json:"price" bson:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Quantity      int      `json:"quantity" bson:"quantity"`
}

type Totals struct {
	ItemsCount int     `json:"itemsCount" bson:"itemsCount" validate:"gte=0"`
	Subtotal   float64 `json:"subtotal" bson:"subtotal" validate:"gte=0"`
	Shipping   float64 `json:"shipping" bson:"shipping" validate:"gte=0"`
	Total      float64 `json:"total" bson:"total" validate:"gte=0"`
}

// Order is a placed purchase. Items and Totals never change after creation;
// only Status, Version and UpdatedAt do.
type Order struct {
	ID        string    `json:"id" bson:"_id"`
	OrderNo   string    `json:"orderNo" bson:"orderNo"`
	OrderType string    `json:"orderType" bson:"orderType"`
	Customer  Customer  `json:"customer" bson:"customer"`
	Items     []Item    `json:"items" bson:"items"`
	Totals    Totals    `json:"totals" bson:"totals"`
	Status    Status    `json:"status" bson:"status"`
	Version   int       `json:"version" bson:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CheckoutItem is a client-submitted line.
type CheckoutItem struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name" validate:"required"`
	Anime         string   `json:"anime"`
	Category      string   `json:"category"`
	Size          string   `json:"size"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	Quantity      int      `json:"quantity" validate:"gt=0"`
}

// Checkout is the payload of POST /api/orders. Totals are optional; when
// present they must agree with the server-side computation.
type Checkout struct {
	OrderType string         `json:"orderType" validate:"omitempty,oneof=cart single"`
	Customer  Customer       `json:"customer"`
	Items     []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	Totals    *Totals        `json:"totals"`
}

func (c Checkout) items() []Item {
	out := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		line := Item{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Anime:         it.Anime,
			Category:      it.Category,
			Size:          it.Size,
			OriginalPrice: it.OriginalPrice,
			Quantity:      it.Quantity,
		}
		if it.Price != nil {
			line.Price = *it.Price
		}
		out = append(out, line)
	}
	return out
}

// ListFilter narrows the admin order listing.
type ListFilter struct {
	Status Status
	Search string
	Limit  int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}

// Stats is the admin dashboard summary.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
}
