package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/utils"
)

const CookieName = "skillhive_token"

// JWT authenticates the request from the session cookie, an
// "Authorization: Bearer" header or, for websocket upgrades, a token query
// parameter. It stores the claims plus "userId" and "role" in the locals.
func JWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFrom(c)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		c.Locals("userId", claims.UserID)
		c.Locals("role", strings.ToLower(strings.TrimSpace(claims.Role)))
		return c.Next()
	}
}

func tokenFrom(c *fiber.Ctx) string {
	if v := c.Cookies(CookieName); v != "" {
		return v
	}
	if h := c.Get(fiber.HeaderAuthorization); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c.Get(fiber.HeaderUpgrade) != "" {
		return c.Query("token")
	}
	return ""
}

// UserID returns the authenticated user id, or 0.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userId").(uint)
	return id
}

func Role(c *fiber.Ctx) string {
	r, _ := c.Locals("role").(string)
	return r
}
