// Package slider manages the homepage hero slides.
package slider

import "time"

// Slider is one homepage slide. Public listings show active slides sorted by
// Order ascending.
type Slider struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description *string   `json:"description,omitempty" bson:"description,omitempty"`
	Image       string    `json:"image" bson:"image"`
	Order       int       `json:"order" bson:"order"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type createRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Image       string  `json:"image" validate:"required,url"`
	Order       int     `json:"order" validate:"gte=0"`
	IsActive    *bool   `json:"isActive"`
}

func (r createRequest) toSlider() Slider {
	s := Slider{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Order:       r.Order,
		IsActive:    true,
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

// Patch is a partial update; nil fields keep their stored values.
type Patch struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Image       *string `json:"image" validate:"omitempty,url"`
	Order       *int    `json:"order" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

func (pt Patch) Apply(s Slider) Slider {
	if pt.Title != nil {
		s.Title = *pt.Title
	}
	if pt.Description != nil {
		s.Description = pt.Description
	}
	if pt.Image != nil {
		s.Image = *pt.Image
	}
	if pt.Order != nil {
		s.Order = *pt.Order
	}
	if pt.IsActive != nil {
		s.IsActive = *pt.IsActive
	}
	return s
}

// Position assigns a display order to one slider.
type Position struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order" validate:"gte=0"`
}

type reorderRequest struct {
	Sliders []Position `json:"sliders" validate:"required,min=1,dive"`
}
