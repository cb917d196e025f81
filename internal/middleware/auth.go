package middleware

import (
	"strings"

	"review-backend/internal/models"
	"review-backend/internal/permissions"
	"review-backend/internal/repository"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// Authenticate resolves an optional bearer token into the current user. A
// missing header leaves the request anonymous; a present but invalid token
// is rejected outright. The user is reloaded from storage so role changes
// take effect on the next request, not at token expiry.
func Authenticate(tokens *services.TokenService, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "missing or invalid authorization header")
		}

		claims, err := tokens.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		user, err := users.FindByID(c.Context(), claims.UserID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to resolve user")
		}
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(currentUserKey).(*models.User); ok {
		return user
	}
	return nil
}

func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !permissions.IsAdmin(user) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// AdminOrReadOnly passes reads through and restricts writes to admins.
func AdminOrReadOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if permissions.AdminOrReadOnly(user, c.Method()) {
			return c.Next()
		}
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "authentication required")
		}
		return utils.ErrorResponse(c, fiber.StatusForbidden, "admin access required")
	}
}
