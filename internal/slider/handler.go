package slider

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/validation"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/sliders", h.getActive)
	app.Get("/api/sliders/:id", h.getSlider)
}

// RegisterProtectedRoutes must run before RegisterPublicRoutes so that
// /api/sliders/all is not captured by /api/sliders/:id.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router, guard fiber.Handler) {
	app.Get("/api/sliders/all", guard, h.getAll)
	app.Put("/api/sliders/reorder", guard, h.reorder)
	app.Post("/api/sliders", guard, h.createSlider)
	app.Put("/api/sliders/:id", guard, h.updateSlider)
	app.Delete("/api/sliders/:id", guard, h.deleteSlider)
}

func (h *Handler) getActive(c *fiber.Ctx) error {
	items, err := h.service.Active(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) getAll(c *fiber.Ctx) error {
	items, err := h.service.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) getSlider(c *fiber.Ctx) error {
	s, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"item": s})
}

func (h *Handler) createSlider(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	if ves := validation.Struct(req); ves != nil {
		return httperr.Validation(ves)
	}
	created, err := h.service.Create(c.UserContext(), req.toSlider())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": created})
}

func (h *Handler) updateSlider(c *fiber.Ctx) error {
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

func (h *Handler) deleteSlider(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) reorder(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	if ves := validation.Struct(req); ves != nil {
		return httperr.Validation(ves)
	}
	items, err := h.service.Reorder(c.UserContext(), req.Sliders)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidID):
		return httperr.BadRequest("Invalid slider ID format")
	case errors.Is(err, ErrNotFound):
		return httperr.NotFound("Slider not found")
	}
	return err
}
