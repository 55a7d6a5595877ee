package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/validation"
	"go.uber.org/zap"
)

type Handler struct {
	creds   *Credentials
	issuer  *Issuer
	limiter *IPLimiter
	secure  bool
	log     *zap.Logger
}

func NewHandler(creds *Credentials, issuer *Issuer, limiter *IPLimiter, secureCookie bool, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{creds: creds, issuer: issuer, limiter: limiter, secure: secureCookie, log: log}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/auth/login", h.login)
	app.Post("/api/auth/logout", h.logout)
}

// RegisterProtectedRoutes mounts the session probe used by the admin UI.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router, guard fiber.Handler) {
	app.Get("/api/auth/me", guard, h.me)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	if !h.limiter.Allow(c.IP()) {
		h.log.Warn("login rate limited", zap.String("ip", c.IP()))
		return httperr.TooManyRequests("Too many login attempts, try again later")
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.BadRequest("invalid request body")
	}
	if ves := validation.Struct(req); ves != nil {
		return httperr.Validation(ves)
	}
	if h.creds == nil {
		return httperr.Internal("admin login is not configured", ErrNotConfigured)
	}

	if err := h.creds.Verify(req.Username, req.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.log.Warn("admin login failed", zap.String("ip", c.IP()))
			return httperr.Unauthorized("Invalid username or password")
		}
		return err
	}

	token, exp, err := h.issuer.Issue(h.creds.Username())
	if err != nil {
		return httperr.Internal("failed to generate token", err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	h.log.Info("admin logged in", zap.String("ip", c.IP()))
	return c.JSON(fiber.Map{"token": token, "expiresAt": exp.UTC()})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"username": SubjectOf(c), "role": RoleOf(c)})
}
