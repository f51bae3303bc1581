package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type ContactHandler struct {
	Store store.Store
}

type ContactReq struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req ContactReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	m := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := h.Store.CreateContactMessage(c.UserContext(), m); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully",
	})
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	msgs, err := h.Store.ListContactMessages(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return c.JSON(msgs)
}
