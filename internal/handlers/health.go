package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type HealthHandler struct {
	Store store.Store
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "database unavailable",
		})
	}
	return c.JSON(fiber.Map{"success": true, "status": "ok"})
}
