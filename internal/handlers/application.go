package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type ApplicationHandler struct {
	Lifecycle *lifecycle.Service
	Store     store.Store
}

type CreateApplicationReq struct {
	ProjectID   uint   `json:"project_id" validate:"required"`
	UserID      uint   `json:"user_id"`
	CoverLetter string `json:"cover_letter" validate:"max=5000"`
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req CreateApplicationReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	caller := middleware.UserID(c)
	userID := req.UserID
	if userID == 0 {
		userID = caller
	}
	if userID != caller && !isAdmin(c) {
		return fail(c, fiber.StatusForbidden, "Cannot apply on behalf of another user")
	}

	a, err := h.Lifecycle.CreateApplication(c.UserContext(), req.ProjectID, userID, req.CoverLetter)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": a,
	})
}

// List returns the joined application view. Non-admins only see their own.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	f := store.ApplicationFilter{
		UserID: uint(c.QueryInt("user_id", 0)),
		Status: models.ApplicationStatus(strings.ToLower(c.Query("status"))),
	}
	if f.Status != "" && !f.Status.Valid() {
		return fail(c, fiber.StatusBadRequest, "Invalid status")
	}
	if !isAdmin(c) {
		f.UserID = middleware.UserID(c)
	}
	return h.list(c, f)
}

// ListForProjects serves /api/applications/projects?projectId=1&projectId=2.
func (h *ApplicationHandler) ListForProjects(c *fiber.Ctx) error {
	var ids []uint
	for _, raw := range c.Context().QueryArgs().PeekMulti("projectId") {
		for _, part := range strings.Split(string(raw), ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil || id == 0 {
				return fail(c, fiber.StatusBadRequest, "Invalid projectId")
			}
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		return fail(c, fiber.StatusBadRequest, "Project IDs are required")
	}

	if !isAdmin(c) {
		owned, err := h.Store.ListProjects(c.UserContext(), store.ProjectFilter{IDs: ids, ClientID: middleware.UserID(c)})
		if err != nil {
			return respondError(c, err)
		}
		if len(owned) != len(uniq(ids)) {
			return fail(c, fiber.StatusForbidden, "You can only view applications for your own projects")
		}
	}
	return h.list(c, store.ApplicationFilter{ProjectIDs: ids})
}

func (h *ApplicationHandler) list(c *fiber.Ctx, f store.ApplicationFilter) error {
	views, err := h.Store.ListApplications(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	if views == nil {
		views = []models.ApplicationView{}
	}
	return c.JSON(views)
}

// UpdateStatus is restricted to the project's owner and the admin.
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req StatusReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	ctx := c.UserContext()
	if !isAdmin(c) {
		a, err := h.Store.GetApplication(ctx, id)
		if err != nil {
			return respondError(c, err)
		}
		p, err := h.Store.GetProject(ctx, a.ProjectID)
		if err != nil {
			return respondError(c, err)
		}
		if p.ClientID != middleware.UserID(c) {
			return fail(c, fiber.StatusForbidden, "Only the project owner can review applications")
		}
	}

	a, err := h.Lifecycle.UpdateApplicationStatus(ctx, id, models.ApplicationStatus(strings.ToLower(req.Status)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Application status updated successfully",
		"application": a,
	})
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
