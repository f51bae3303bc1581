package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/account"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/utils"
)

type AuthHandler struct {
	Accounts     *account.Service
	JWTSecret    string
	Expires      int
	SecureCookie bool
}

type SignupReq struct {
	FullName    string `json:"fullName" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email,max=190"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	AccountType string `json:"accountType" validate:"omitempty,oneof=client freelancer"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	u, err := h.Accounts.Signup(c.UserContext(), account.SignupInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		AccountType: req.AccountType,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"user":    u,
	})
}

type LoginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	u, err := h.Accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID, string(h.Accounts.Role(u)), h.Expires)
	if err != nil {
		return respondError(c, err)
	}
	h.setCookie(c, token, h.Expires*60)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    u,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setCookie(c, "", -1)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, err := h.Accounts.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

// isAdmin reports whether the authenticated caller carries the admin role.
func isAdmin(c *fiber.Ctx) bool {
	return middleware.Role(c) == string(models.RoleAdmin)
}
