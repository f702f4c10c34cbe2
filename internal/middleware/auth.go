package middleware

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired.
const (
	// PrincipalKey holds the resolved policy.Principal.
	PrincipalKey = "principal"
)

// AuthRequired enforces bearer-token authentication. It verifies the token
// statelessly, then resolves the principal through the repository's default
// (soft-delete hiding) accessor, so a deleted account's tokens stop working
// even before they expire. The resolved principal is stored in Locals.
func AuthRequired(tokens *auth.TokenService, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(tokenErrorMessage(err)))
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			// NotFound covers both unknown and soft-deleted accounts.
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Could not validate credentials"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}

		c.Locals("userID", user.ID)
		c.Locals(PrincipalKey, policy.Principal{ID: user.ID, Superuser: user.IsSuperuser})
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))

		return c.Next()
	}
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenSignatureInvalid):
		return "Invalid token signature"
	default:
		return "Malformed token"
	}
}
