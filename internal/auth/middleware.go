package auth

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/arix-backend/internal/httperr"
)

// CookieName carries the admin token for browser clients.
const CookieName = "admin_token"

// RequireAdmin accepts a token from the Authorization header or the
// admin_token cookie. Missing or invalid tokens get 401, non-admin roles 403.
func RequireAdmin(secret string) fiber.Handler {
	verify := jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ContextKey:    "admin",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Unauthorized("Unauthorized")
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			if RoleOf(c) != RoleAdmin {
				return httperr.Forbidden("Forbidden")
			}
			return c.Next()
		},
	})
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			if tok := c.Cookies(CookieName); tok != "" {
				c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
			}
		}
		return verify(c)
	}
}

func claimsOf(c *fiber.Ctx) jwt.MapClaims {
	tok, ok := c.Locals("admin").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	return claims
}

// RoleOf returns the role claim of the verified token, if any.
func RoleOf(c *fiber.Ctx) string {
	role, _ := claimsOf(c)["role"].(string)
	return role
}

// SubjectOf returns the sub claim of the verified token, if any.
func SubjectOf(c *fiber.Ctx) string {
	sub, _ := claimsOf(c)["sub"].(string)
	return sub
}
