package httperr

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(route fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: Handler(zap.NewNop())})
	app.Get("/x", route)
	return app
}

func decode(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	res, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

func TestHandler_ValidationFields(t *testing.T) {
	app := newApp(func(c *fiber.Ctx) error {
		return Validation(map[string]string{"phone": "phone is required"})
	})
	status, body := decode(t, app)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation failed", body["error"])
	fields, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "phone is required", fields["phone"])
}

func TestHandler_UnknownErrorIsGeneric(t *testing.T) {
	app := newApp(func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused on 10.0.0.3")
	})
	status, body := decode(t, app)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestHandler_FiberError(t *testing.T) {
	app := newApp(func(c *fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})
	status, _ := decode(t, app)
	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
}

func TestError_Unwrap(t *testing.T) {
	base := errors.New("bucket missing")
	err := Upstream("upload failed", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, 502, err.StatusCode())
	assert.Contains(t, err.Error(), "bucket missing")
}
