package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nested struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type sample struct {
	Name   string   `json:"name" validate:"required"`
	Email  string   `json:"email" validate:"omitempty,email"`
	Anime  string   `json:"anime" validate:"omitempty,anime"`
	Sizes  []string `json:"sizes" validate:"omitempty,min=1,dive,size"`
	Inner  nested   `json:"inner"`
	Amount float64  `json:"amount" validate:"gte=0"`
}

func TestIsPhone(t *testing.T) {
	cases := map[string]bool{
		"01712345678":       true,
		"017 1234 5678":     true,
		"+8801712345678":    true,
		"+88 01712345678":   true,
		"0171234567":        false,
		"02712345678":       false,
		"+4401712345678":    false,
		"":                  false,
		"01712345678-ext99": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsPhone(in), in)
	}
}

func TestStruct_FieldPaths(t *testing.T) {
	errs := Struct(sample{
		Email:  "not-an-email",
		Anime:  "Bleach",
		Sizes:  []string{"M", "S"},
		Inner:  nested{Phone: "12345"},
		Amount: -1,
	})
	assert.Equal(t, "name is required", errs["name"])
	assert.Equal(t, "Please enter a valid email", errs["email"])
	assert.Equal(t, "invalid anime", errs["anime"])
	assert.Equal(t, "invalid size", errs["sizes[1]"])
	assert.Contains(t, errs["inner.phone"], "valid phone")
	assert.Contains(t, errs["amount"], ">= 0")
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(sample{Name: "Tee", Inner: nested{Phone: "01812345678"}, Sizes: []string{"L"}})
	assert.Nil(t, errs)
}
