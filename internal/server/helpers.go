// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// parsePagination extracts limit and offset query parameters. Bounds
// checking happens again in the repository; this only normalizes obvious
// garbage early.
func parsePagination(c *fiber.Ctx) repository.Pagination {
	return repository.Pagination{
		Limit:  c.QueryInt("limit", repository.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
	}.Normalize()
}

// includeDeleted reports whether the caller asked to see soft-deleted rows.
// The policy engine decides whether they may.
func includeDeleted(c *fiber.Ctx) bool {
	return c.QueryBool("include_deleted", false)
}

// principalFrom returns the authenticated principal resolved by the auth
// middleware. Routes calling this must be registered behind AuthRequired.
func principalFrom(c *fiber.Ctx) policy.Principal {
	p, _ := c.Locals(middleware.PrincipalKey).(policy.Principal)
	return p
}

// parseID extracts a route parameter as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// statusForError maps the application error taxonomy to HTTP status codes.
// This is the only place transport status is decided; the core never sees it.
func statusForError(err error) int {
	appErr, ok := err.(*models.AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standardized error response for err.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
