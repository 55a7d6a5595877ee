package cart

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/order"
	"github.com/wichananm65/arix-backend/internal/product"
	"github.com/wichananm65/arix-backend/internal/validation"
	"go.uber.org/zap"
)

const (
	// CookieName holds the session cart key.
	CookieName = "arix_cart"
	cookieTTL  = 30 * 24 * time.Hour
)

type ProductReader interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type OrderPlacer interface {
	Place(ctx context.Context, in order.Checkout) (order.Order, error)
}

// Handler delegates cart operations to the session cart manager.
type Handler struct {
	sessions *Sessions
	products ProductReader
	orders   OrderPlacer
	secure   bool
}

func NewHandler(sessions *Sessions, products ProductReader, orders OrderPlacer, secureCookie bool) *Handler {
	return &Handler{sessions: sessions, products: products, orders: orders, secure: secureCookie}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/cart", h.getCart)
	app.Delete("/api/cart", h.clearCart)
	app.Post("/api/cart/items", h.addItem)
	app.Patch("/api/cart/items", h.updateItem)
	app.Delete("/api/cart/items", h.removeItem)
	app.Post("/api/cart/checkout", h.checkout)
}

// sessionKey returns the caller's cart key, issuing a new cookie when the
// current one is missing or malformed.
func (h *Handler) sessionKey(c *fiber.Ctx) string {
	if v := c.Cookies(CookieName); v != "" {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}
	key := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    key,
		Path:     "/",
		Expires:  time.Now().Add(cookieTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return key
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	var st State
	err := h.sessions.With(c.UserContext(), h.sessionKey(c), func(ct *Cart) error {
		st = ct.State()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": st})
}

type itemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required,size"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if ves := validation.Struct(req); ves != nil {
		return httperr.Validation(ves)
	}

	p, err := h.products.GetByID(c.UserContext(), req.ProductID)
	switch {
	case errors.Is(err, product.ErrInvalidID):
		return httperr.BadRequest("Invalid product ID format")
	case errors.Is(err, product.ErrNotFound):
		return httperr.NotFound("Product not found")
	case err != nil:
		return err
	}
	if !p.IsActive {
		return httperr.Validation(map[string]string{"productId": "product is not available"})
	}
	if !p.HasSize(req.Size) {
		return httperr.Validation(map[string]string{"size": "size is not offered for this product"})
	}

	var st State
	err = h.sessions.With(c.UserContext(), h.sessionKey(c), func(ct *Cart) error {
		if err := ct.Add(c.UserContext(), p, req.Size, req.Quantity); err != nil {
			return err
		}
		st = ct.State()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": st})
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	if req.ProductID == "" || req.Size == "" {
		return httperr.Validation(map[string]string{"productId": "productId and size are required"})
	}

	var st State
	err := h.sessions.With(c.UserContext(), h.sessionKey(c), func(ct *Cart) error {
		if err := ct.UpdateQuantity(c.UserContext(), req.ProductID, req.Size, req.Quantity); err != nil {
			return err
		}
		st = ct.State()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": st})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	productID, size := c.Query("productId"), c.Query("size")
	if productID == "" || size == "" {
		return httperr.BadRequest("productId and size query parameters are required")
	}
	var st State
	err := h.sessions.With(c.UserContext(), h.sessionKey(c), func(ct *Cart) error {
		if err := ct.Remove(c.UserContext(), productID, size); err != nil {
			return err
		}
		st = ct.State()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": st})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	err := h.sessions.With(c.UserContext(), h.sessionKey(c), func(ct *Cart) error {
		return ct.Clear(c.UserContext())
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cart": EmptyState()})
}

type checkoutRequest struct {
	Customer order.Customer `json:"customer"`
}

// checkout places an order from the session cart. The cart is cleared only
// after the order has been stored.
func (h *Handler) checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}

	var placed order.Order
	err := h.sessions.With(c.UserContext(), h.sessionKey(c), func(ct *Cart) error {
		st := ct.State()
		if len(st.Items) == 0 {
			return httperr.BadRequest("cart is empty")
		}
		ord, err := h.orders.Place(c.UserContext(), toCheckout(st, req.Customer))
		if err != nil {
			return order.MapError(err)
		}
		placed = ord
		if err := ct.Clear(c.UserContext()); err != nil {
			// order already stored
			h.sessions.log.Warn("cart not cleared after checkout",
				zap.String("order_no", ord.OrderNo), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderNo": placed.OrderNo, "id": placed.ID})
}

func toCheckout(st State, customer order.Customer) order.Checkout {
	items := make([]order.CheckoutItem, 0, len(st.Items))
	for _, it := range st.Items {
		price := it.Price
		items = append(items, order.CheckoutItem{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Anime:         it.Anime,
			Category:      it.Category,
			Size:          it.Size,
			Price:         &price,
			OriginalPrice: it.OriginalPrice,
			Quantity:      it.Quantity,
		})
	}
	return order.Checkout{OrderType: order.TypeCart, Customer: customer, Items: items}
}
