// Package httperr carries HTTP-aware application errors from handlers to the
// fiber error handler.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Error is an application error with an HTTP status and optional field-level
// validation messages.
type Error struct {
	Code    int               `json:"-"`
	Message string            `json:"error"`
	Fields  map[string]string `json:"errors,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode exposes the HTTP status for loggers.
func (e *Error) StatusCode() int { return e.Code }

func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Validation reports field-level failures as a 400.
func Validation(fields map[string]string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: "validation failed", Fields: fields}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

func Conflict(message string, err error) *Error {
	return New(http.StatusConflict, message, err)
}

func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message, nil)
}

// Upstream wraps a failure of an external dependency such as object storage.
func Upstream(message string, err error) *Error {
	return New(http.StatusBadGateway, message, err)
}

func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Handler converts errors returned by route handlers into JSON responses.
// Anything that is not an *Error or *fiber.Error becomes a generic 500 and is
// logged; its message never reaches the client.
func Handler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *Error
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				log.Error("request failed",
					zap.String("path", c.Path()),
					zap.Int("status", appErr.Code),
					zap.Error(err))
			}
			return c.Status(appErr.Code).JSON(appErr)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
