package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/account"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type UserHandler struct {
	Accounts  *account.Service
	Lifecycle *lifecycle.Service
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Accounts.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) FreelancerCandidates(c *fiber.Ctx) error {
	users, err := h.Accounts.FreelancerCandidates(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

type FreelancerStatusReq struct {
	IsFreelancer *bool `json:"is_freelancer" validate:"required"`
}

func (h *UserHandler) SetFreelancer(c *fiber.Ctx) error {
	id, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	var req FreelancerStatusReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	u, err := h.Accounts.SetFreelancer(c.UserContext(), id, *req.IsFreelancer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Freelancer status updated successfully",
		"user":    u,
	})
}

type ProfileReq struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Bio      string `json:"bio" validate:"max=2000"`
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	var req ProfileReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	u, err := h.Accounts.UpdateProfile(c.UserContext(), id, store.ProfileUpdate{Name: req.FullName, Bio: req.Bio})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    u,
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if u, err := h.Accounts.Get(c.UserContext(), id); err == nil && u.IsAdmin {
		return fail(c, fiber.StatusBadRequest, "The admin account cannot be deleted")
	}
	if err := h.Accounts.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	id, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	d, err := h.Lifecycle.FreelancerDashboard(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

