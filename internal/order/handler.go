package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/validation"
)

// Handler exposes checkout to customers and the order console to admins.
// Customer-facing lookups live in the tracking package.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/orders", h.createOrder)
}

// RegisterProtectedRoutes must run before the tracking routes so that
// /api/orders/stats is not read as an order number.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router, guard fiber.Handler) {
	app.Get("/api/orders", guard, h.listOrders)
	app.Get("/api/orders/stats", guard, h.stats)
	app.Patch("/api/orders/:orderNo", guard, h.updateStatus)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	var in Checkout
	if err := c.BodyParser(&in); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	ord, err := h.service.Place(c.UserContext(), in)
	if err != nil {
		return MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderNo": ord.OrderNo, "id": ord.ID})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	f := ListFilter{
		Status: Status(c.Query("status")),
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit", DefaultListLimit),
	}
	items, err := h.service.List(c.UserContext(), f)
	if err != nil {
		return MapError(err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) stats(c *fiber.Ctx) error {
	st, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(st)
}

type statusRequest struct {
	Status  string `json:"status" validate:"required,oneof=placed confirmed processing shipped delivered cancelled"`
	Version *int   `json:"version" validate:"required,gte=1"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	if ves := validation.Struct(req); ves != nil {
		return httperr.Validation(ves)
	}
	ord, err := h.service.SetStatus(c.UserContext(), c.Params("orderNo"), Status(req.Status), *req.Version)
	if err != nil {
		return MapError(err)
	}
	return c.JSON(fiber.Map{"order": ord})
}

// MapError converts order errors into HTTP errors.
func MapError(err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return httperr.Validation(ve.Fields)
	case errors.Is(err, ErrNotFound):
		return httperr.NotFound("Not found")
	case errors.Is(err, ErrInvalidStatus):
		return httperr.BadRequest("invalid status")
	case errors.Is(err, ErrVersionConflict):
		return httperr.Conflict("order was updated by someone else, reload and try again", err)
	case errors.Is(err, ErrIllegalTransition):
		return httperr.Conflict(err.Error(), err)
	}
	return err
}
