package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/store"
)

// RequireAuth rejects requests when no session is active. The session lives
// in the store, not in a request token, so the guard only checks the slot.
func RequireAuth(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests unless the active session holds the admin
// role.
func RequireAdmin(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := s.CurrentUser()
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if user.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}
