package product

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/validation"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/products", h.getProducts)
	app.Get("/api/products/:id", h.getProduct)

	// dev-only, enabled when ALLOW_RESET_PRODUCTS=1
	app.Post("/api/dev/reset-products", h.resetProducts)
}

// RegisterProtectedRoutes mounts the admin endpoints behind guard.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router, guard fiber.Handler) {
	app.Post("/api/products", guard, h.createProduct)
	app.Put("/api/products/:id", guard, h.updateProduct)
	app.Delete("/api/products/:id", guard, h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	f := Filter{
		Search:   c.Query("search"),
		Anime:    c.Query("anime"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		IsNew:    c.Query("isNew") == "true",
		OnSale:   c.Query("onSale") == "true",
		Limit:    c.QueryInt("limit", MaxListLimit),
	}
	items, err := h.service.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"item": p})
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	// validate payload and return all validation errors together
	if ves := validation.Struct(req); ves != nil {
		return httperr.Validation(ves)
	}

	created, err := h.service.Create(c.UserContext(), req.toProduct())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": created})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if !ValidID(id) {
		return mapError(ErrInvalidID)
	}
	var patch Patch
	if err := c.BodyParser(&patch); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	if ves := validation.Struct(patch); ves != nil {
		return httperr.Validation(ves)
	}

	updated, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"item": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// resetProducts clears the catalog and inserts the provided list (or the
// sample catalog when the body is not a product array). An explicit empty
// array deletes everything.
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_RESET_PRODUCTS") != "1" {
		return httperr.Forbidden("reset not allowed")
	}

	var products []Product
	if err := c.BodyParser(&products); err != nil {
		products = SampleProducts(h.service.now())
	}
	out, err := h.service.ResetProducts(c.UserContext(), products)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": out})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidID):
		return httperr.BadRequest("Invalid product ID format")
	case errors.Is(err, ErrNotFound):
		return httperr.NotFound("Product not found")
	}
	return err
}
