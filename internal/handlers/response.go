package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/account"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/onboarding"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Error() string {
	return "validation error"
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validation error",
		"errors":  errs,
	})
}

// respondError maps service and store errors onto the HTTP error envelope.
func respondError(c *fiber.Ctx, err error) error {
	var (
		fieldErrs FieldErrors
		fiberErr  *fiber.Error
	)
	switch {
	case errors.As(err, &fieldErrs):
		return validationFail(c, fieldErrs)
	case errors.As(err, &fiberErr):
		return fail(c, fiberErr.Code, fiberErr.Message)
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, account.ErrEmailTaken):
		return fail(c, fiber.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, account.ErrReservedEmail):
		return fail(c, fiber.StatusBadRequest, "This email address is reserved")
	case errors.Is(err, account.ErrInvalidCredentials):
		return fail(c, fiber.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, lifecycle.ErrInvalidStatus), errors.Is(err, onboarding.ErrInvalidStatus):
		return fail(c, fiber.StatusBadRequest, "Invalid status")
	case errors.Is(err, lifecycle.ErrUnknownProject):
		return fail(c, fiber.StatusBadRequest, "Project does not exist")
	case errors.Is(err, lifecycle.ErrUnknownUser), errors.Is(err, onboarding.ErrUnknownUser):
		return fail(c, fiber.StatusBadRequest, "User does not exist")
	case errors.Is(err, onboarding.ErrInvalidResume):
		return fail(c, fiber.StatusBadRequest, "Resume must be a PDF, DOC or DOCX file of at most 5MB")
	}

	logger.WithRequest(c).Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// ErrorHandler renders errors returned from handlers and middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}
