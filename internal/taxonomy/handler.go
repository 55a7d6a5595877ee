package taxonomy

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/arix-backend/internal/httperr"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/taxonomy", h.getTaxonomy)
	app.Get("/api/anime", h.listAnime)
	app.Get("/api/anime/:slug", h.getAnime)
}

func (h *Handler) getTaxonomy(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"animes":     Animes,
		"categories": Categories,
		"sizes":      Sizes,
	})
}

func (h *Handler) listAnime(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": Animes})
}

func (h *Handler) getAnime(c *fiber.Ctx) error {
	a, ok := AnimeBySlug(c.Params("slug"))
	if !ok {
		return httperr.NotFound("Anime not found")
	}
	return c.JSON(fiber.Map{"item": a})
}
