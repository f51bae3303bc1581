package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/onboarding"
)

type FreelancerApplicationHandler struct {
	Onboarding *onboarding.Service
}

// SubmitReq is the multipart form of the "become a freelancer" page.
type SubmitReq struct {
	FullName     string `form:"full_name" validate:"required,max=120"`
	Email        string `form:"email" validate:"required,email"`
	University   string `form:"university" validate:"required,max=160"`
	Major        string `form:"major" validate:"required,max=120"`
	Skills       string `form:"skills" validate:"max=1000"`
	Experience   string `form:"experience" validate:"max=5000"`
	PortfolioURL string `form:"portfolio_url" validate:"omitempty,url"`
	GithubURL    string `form:"github_url" validate:"omitempty,url"`
}

func (h *FreelancerApplicationHandler) Submit(c *fiber.Ctx) error {
	var req SubmitReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	in := onboarding.SubmitInput{
		UserID:       middleware.UserID(c),
		FullName:     req.FullName,
		Email:        req.Email,
		University:   req.University,
		Major:        req.Major,
		Skills:       strings.Split(req.Skills, ","),
		Experience:   req.Experience,
		PortfolioURL: req.PortfolioURL,
		GithubURL:    req.GithubURL,
	}

	if file, err := c.FormFile("resume"); err == nil {
		if file.Size > onboarding.MaxResumeSize {
			return respondError(c, onboarding.ErrInvalidResume)
		}
		f, err := file.Open()
		if err != nil {
			return respondError(c, err)
		}
		defer f.Close()
		in.Resume = &onboarding.Resume{Filename: file.Filename, Size: file.Size, Content: f}
	}

	fa, err := h.Onboarding.Submit(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": fa,
	})
}

func (h *FreelancerApplicationHandler) List(c *fiber.Ctx) error {
	out, err := h.Onboarding.List(c.UserContext(), models.ApplicationStatus(strings.ToLower(c.Query("status"))))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *FreelancerApplicationHandler) Review(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req StatusReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	fa, err := h.Onboarding.Review(c.UserContext(), id, models.ApplicationStatus(strings.ToLower(req.Status)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Application reviewed",
		"application": fa,
	})
}
