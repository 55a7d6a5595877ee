package cart

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/order"
	"github.com/wichananm65/arix-backend/internal/product"
	"go.uber.org/zap"
)

type cartFixture struct {
	app      *fiber.App
	orders   *order.Service
	products *product.InMemoryRepository
	cookie   *http.Cookie
	active   string
	inactive string
}

func newFixture(t *testing.T) *cartFixture {
	t.Helper()
	now := time.Now()
	active := product.Product{ID: "0b0c6c8e-9a43-4b8e-8f33-6b1f3b1d0001", Name: "Gojo Tee", Price: 17.5,
		Anime: "Jujutsu Kaisen", Category: "normal", Sizes: []string{"M", "L"}, IsActive: true, CreatedAt: now}
	inactive := product.Product{ID: "0b0c6c8e-9a43-4b8e-8f33-6b1f3b1d0002", Name: "Retired Tee", Price: 10,
		Anime: "Naruto", Category: "normal", Sizes: []string{"M"}, IsActive: false, CreatedAt: now}
	products := product.NewInMemoryRepository([]product.Product{active, inactive})
	orders := order.NewService(order.NewInMemoryRepository(), order.Options{ShippingFee: order.DefaultShippingFee}, nil)

	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler(zap.NewNop())})
	NewHandler(NewSessions(NewMemoryStore(), nil), product.NewService(products), orders, false).RegisterPublicRoutes(app)
	return &cartFixture{app: app, orders: orders, products: products, active: active.ID, inactive: inactive.ID}
}

func (f *cartFixture) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}
	res, err := f.app.Test(req, -1)
	require.NoError(t, err)
	for _, ck := range res.Cookies() {
		if ck.Name == CookieName {
			f.cookie = ck
		}
	}
	out := map[string]any{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func cartOf(t *testing.T, body map[string]any) State {
	t.Helper()
	raw, err := json.Marshal(body["cart"])
	require.NoError(t, err)
	var st State
	require.NoError(t, json.Unmarshal(raw, &st))
	return st
}

func TestCheckout_HappyPath(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "POST", "/api/cart/items", `{"productId":"`+f.active+`","size":"L","quantity":1}`)
	require.Equal(t, 200, status)
	require.NotNil(t, f.cookie, "expected a session cookie to be issued")
	status, body = f.do(t, "POST", "/api/cart/items", `{"productId":"`+f.active+`","size":"L","quantity":1}`)
	require.Equal(t, 200, status)
	st := cartOf(t, body)
	require.Len(t, st.Items, 1)
	assert.Equal(t, 2, st.TotalItems)
	assert.Equal(t, 35.0, st.TotalPrice)

	status, body = f.do(t, "POST", "/api/cart/checkout", `{"customer":{"fullName":"Rahim","phone":"01712345678","address":"Road 4","city":"Dhaka","postalCode":"1205"}}`)
	require.Equal(t, fiber.StatusCreated, status)
	orderNo, _ := body["orderNo"].(string)
	require.True(t, order.ValidOrderNo(orderNo))

	ord, err := f.orders.Get(context.Background(), orderNo)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, ord.Status)
	assert.Equal(t, 35.0, ord.Totals.Subtotal)
	assert.Equal(t, ord.Totals.Subtotal+order.DefaultShippingFee, ord.Totals.Total)

	_, body = f.do(t, "GET", "/api/cart", "")
	assert.Empty(t, cartOf(t, body).Items)

	// catalog changes never touch the placed order
	require.NoError(t, f.products.Delete(context.Background(), f.active))
	ord, err = f.orders.Get(context.Background(), orderNo)
	require.NoError(t, err)
	assert.Equal(t, "Gojo Tee", ord.Items[0].Name)
}

func TestCheckout_InvalidCustomerKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.do(t, "POST", "/api/cart/items", `{"productId":"`+f.active+`","size":"M"}`)

	status, body := f.do(t, "POST", "/api/cart/checkout", `{"customer":{"fullName":"Rahim","phone":"999","address":"a","city":"b","postalCode":"c"}}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "customer.phone")

	_, body = f.do(t, "GET", "/api/cart", "")
	assert.Equal(t, 1, cartOf(t, body).TotalItems)

	st, err := f.orders.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Total)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)
	status, _ := f.do(t, "POST", "/api/cart/checkout", `{"customer":{}}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAddItem_Rejections(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "POST", "/api/cart/items", `{"productId":"`+f.inactive+`","size":"M"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "productId")

	status, body = f.do(t, "POST", "/api/cart/items", `{"productId":"`+f.active+`","size":"XL"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "size")

	status, _ = f.do(t, "POST", "/api/cart/items", `{"productId":"nope","size":"M"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = f.do(t, "POST", "/api/cart/items", `{"productId":"0b0c6c8e-9a43-4b8e-8f33-6b1f3b1d0999","size":"M"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUpdateAndRemoveItems(t *testing.T) {
	f := newFixture(t)
	f.do(t, "POST", "/api/cart/items", `{"productId":"`+f.active+`","size":"M","quantity":2}`)

	status, body := f.do(t, "PATCH", "/api/cart/items", `{"productId":"`+f.active+`","size":"M","quantity":5}`)
	require.Equal(t, 200, status)
	assert.Equal(t, 5, cartOf(t, body).TotalItems)

	status, body = f.do(t, "DELETE", "/api/cart/items?productId="+f.active+"&size=M", "")
	require.Equal(t, 200, status)
	assert.Empty(t, cartOf(t, body).Items)

	status, _ = f.do(t, "DELETE", "/api/cart/items", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = f.do(t, "DELETE", "/api/cart", "")
	assert.Equal(t, 200, status)
}
