package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type ProjectHandler struct {
	Lifecycle *lifecycle.Service
	Store     store.Store
}

// List serves GET /api/projects?status=&category=&client_id=&sort=&order=
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	f := store.ProjectFilter{
		Status:   models.ProjectStatus(strings.ToLower(c.Query("status"))),
		Category: c.Query("category"),
		ClientID: uint(c.QueryInt("client_id", 0)),
		SortBy:   c.Query("sort", "created_at"),
		Asc:      strings.EqualFold(c.Query("order"), "asc"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return fail(c, fiber.StatusBadRequest, "Invalid status")
	}

	projects, err := h.Lifecycle.ListProjects(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := h.Store.GetProject(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

func (h *ProjectHandler) ListByClient(c *fiber.Ctx) error {
	clientID, err := paramID(c, "clientId")
	if err != nil {
		return respondError(c, err)
	}
	projects, err := h.Lifecycle.ListProjects(c.UserContext(), store.ProjectFilter{ClientID: clientID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

type CreateProjectReq struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Budget      float64  `json:"budget" validate:"gte=0"`
	Deadline    string   `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Category    string   `json:"category" validate:"max=80"`
	Skills      []string `json:"skills" validate:"dive,max=60"`
	ClientID    uint     `json:"client_id"`
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req CreateProjectReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	caller := middleware.UserID(c)
	clientID := req.ClientID
	if clientID == 0 {
		clientID = caller
	}
	if clientID != caller && !isAdmin(c) {
		return fail(c, fiber.StatusForbidden, "Cannot post a project for another user")
	}

	deadline, err := models.ParseDate(req.Deadline)
	if err != nil {
		return respondError(c, FieldErrors{"deadline": {err.Error()}})
	}

	p := &models.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    deadline,
		Category:    strings.TrimSpace(req.Category),
		Skills:      req.Skills,
		ClientID:    clientID,
	}
	if err := h.Lifecycle.CreateProject(c.UserContext(), p); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Project created successfully",
		"project": p,
	})
}

type StatusReq struct {
	Status string `json:"status" validate:"required"`
}

// Dashboard serves the client overview for /api/projects/client/:clientId/dashboard.
func (h *ProjectHandler) Dashboard(c *fiber.Ctx) error {
	clientID, err := paramID(c, "clientId")
	if err != nil {
		return respondError(c, err)
	}
	d, err := h.Lifecycle.ClientDashboard(c.UserContext(), clientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req StatusReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	ctx := c.UserContext()
	current, err := h.Store.GetProject(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if current.ClientID != middleware.UserID(c) && !isAdmin(c) {
		return fail(c, fiber.StatusForbidden, "Only the project owner can change its status")
	}

	p, err := h.Lifecycle.UpdateProjectStatus(ctx, id, models.ProjectStatus(strings.ToLower(req.Status)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project status updated successfully",
		"project": p,
	})
}
