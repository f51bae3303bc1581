package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		if UserID(c) == 0 {
			return fiber.ErrUnauthorized
		}
		if !allowedSet[Role(c)] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}
		return c.Next()
	}
}

// SelfOrAdmin lets the request through when the route parameter param names
// the caller, or when the caller is an admin.
func SelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := UserID(c)
		if uid == 0 {
			return fiber.ErrUnauthorized
		}
		if Role(c) == "admin" {
			return c.Next()
		}
		target, err := strconv.ParseUint(c.Params(param), 10, 64)
		if err != nil || uint(target) != uid {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: not your account")
		}
		return c.Next()
	}
}
