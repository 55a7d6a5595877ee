package product

import (
	"math"
	"time"
)

// Images holds the three views shown on a product page.
type Images struct {
	Front  *string `json:"front,omitempty" bson:"front,omitempty" validate:"omitempty,url"`
	Back   *string `json:"back,omitempty" bson:"back,omitempty" validate:"omitempty,url"`
	Detail *string `json:"detail,omitempty" bson:"detail,omitempty" validate:"omitempty,url"`
}

// Product is a catalog record. IDs are UUID strings in every store.
type Product struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Price         float64   `json:"price" bson:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Images        Images    `json:"images" bson:"images"`
	Anime         string    `json:"anime" bson:"anime"`
	Category      string    `json:"category" bson:"category"`
	Sizes         []string  `json:"sizes" bson:"sizes"`
	IsNew         bool      `json:"isNew" bson:"isNew"`
	Discount      int       `json:"discount" bson:"discount"`
	IsActive      bool      `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// EffectiveDiscount derives the percentage from originalPrice when both
// prices are known; otherwise the stored discount applies.
func (p Product) EffectiveDiscount() int {
	if p.OriginalPrice != nil && *p.OriginalPrice > 0 && p.Price > 0 {
		return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
	}
	return p.Discount
}

// OnSale reports whether the product is discounted either way.
func (p Product) OnSale() bool {
	if p.Discount > 0 {
		return true
	}
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// HasSize reports whether the product is offered in size s.
func (p Product) HasSize(s string) bool {
	for _, v := range p.Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// FrontImage returns the front image URL or an empty string.
func (p Product) FrontImage() string {
	if p.Images.Front != nil {
		return *p.Images.Front
	}
	return ""
}

// Sort keys accepted by List.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
	SortAnime     = "anime"
)

// MaxListLimit caps how many products a single listing returns.
const MaxListLimit = 100

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	Search   string
	Anime    string
	Category string
	Sort     string
	IsNew    bool
	OnSale   bool
	Limit    int
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name          *string   `json:"name" validate:"omitempty,min=1"`
	Price         *float64  `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice *float64  `json:"originalPrice" validate:"omitempty,gt=0"`
	Images        *Images   `json:"images"`
	Anime         *string   `json:"anime" validate:"omitempty,anime"`
	Category      *string   `json:"category" validate:"omitempty,apparel_category"`
	Sizes         *[]string `json:"sizes" validate:"omitempty,min=1,dive,size"`
	IsNew         *bool     `json:"isNew"`
	Discount      *int      `json:"discount" validate:"omitempty,gte=0,lte=100"`
	IsActive      *bool     `json:"isActive"`
}

// Apply copies the non-nil fields of the patch onto p.
func (pt Patch) Apply(p Product) Product {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.OriginalPrice != nil {
		p.OriginalPrice = pt.OriginalPrice
	}
	if pt.Images != nil {
		p.Images = *pt.Images
	}
	if pt.Anime != nil {
		p.Anime = *pt.Anime
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.Sizes != nil {
		p.Sizes = append([]string(nil), (*pt.Sizes)...)
	}
	if pt.IsNew != nil {
		p.IsNew = *pt.IsNew
	}
	if pt.Discount != nil {
		p.Discount = *pt.Discount
	}
	if pt.IsActive != nil {
		p.IsActive = *pt.IsActive
	}
	return p
}

// createRequest is the payload accepted by POST /api/products.
type createRequest struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gt=0"`
	Images        Images   `json:"images"`
	Anime         string   `json:"anime" validate:"required,anime"`
	Category      string   `json:"category" validate:"required,apparel_category"`
	Sizes         []string `json:"sizes" validate:"omitempty,min=1,dive,size"`
	IsNew         bool     `json:"isNew"`
	Discount      *int     `json:"discount" validate:"omitempty,gte=0,lte=100"`
	IsActive      *bool    `json:"isActive"`
}

func (r createRequest) toProduct() Product {
	p := Product{
		Name:          r.Name,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Images:        r.Images,
		Anime:         r.Anime,
		Category:      r.Category,
		Sizes:         r.Sizes,
		IsNew:         r.IsNew,
		IsActive:      true,
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if r.Discount != nil {
		p.Discount = *r.Discount
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return p
}
