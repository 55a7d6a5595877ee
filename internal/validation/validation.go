// Package validation wraps go-playground/validator with the storefront's
// custom tags and turns failures into field -> message maps.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/wichananm65/arix-backend/internal/taxonomy"
)

var (
	localPhone = regexp.MustCompile(`^01\d{9}$`)
	intlPhone  = regexp.MustCompile(`^\+8801\d{9}$`)

	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with custom tags registered:
// anime, apparel_category, size, phone.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("anime", func(fl validator.FieldLevel) bool {
			return taxonomy.IsAnime(fl.Field().String())
		})
		_ = v.RegisterValidation("apparel_category", func(fl validator.FieldLevel) bool {
			return taxonomy.IsCategory(fl.Field().String())
		})
		_ = v.RegisterValidation("size", func(fl validator.FieldLevel) bool {
			return taxonomy.IsSize(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// IsPhone accepts a local mobile number (01 + 9 digits) or the +880
// international form. Whitespace is ignored.
func IsPhone(raw string) bool {
	normalized := strings.Join(strings.Fields(raw), "")
	return localPhone.MatchString(normalized) || intlPhone.MatchString(normalized)
}

// Struct validates s and returns nil or a field -> message map.
func Struct(s any) map[string]string {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		field := fieldPath(fe.Namespace())
		if _, exists := out[field]; !exists {
			out[field] = message(field, fe)
		}
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please enter a valid email"
	case "url", "http_url":
		return field + " must be a valid URL"
	case "phone":
		return "Please enter a valid phone number (01XXXXXXXXX or +88 01XXXXXXXXX)"
	case "anime":
		return "invalid anime"
	case "apparel_category":
		return "invalid category"
	case "size":
		return "invalid size"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "uuid4", "uuid":
		return field + " must be a valid id"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
