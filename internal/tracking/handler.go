package tracking

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/order"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes needs no authentication; the order number is the
// customer's handle on the order.
func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/orders/:orderNo", h.getOrder)
	app.Get("/api/orders/:orderNo/progress", h.getProgress)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ord, err := h.service.Lookup(c.UserContext(), c.Params("orderNo"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"order": ord})
}

func (h *Handler) getProgress(c *fiber.Ctx) error {
	ord, err := h.service.Lookup(c.UserContext(), c.Params("orderNo"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(ToProgressResponse(ord))
}

func mapError(err error) error {
	if errors.Is(err, order.ErrNotFound) {
		return httperr.NotFound("Not found")
	}
	return err
}
