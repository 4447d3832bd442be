package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cleankili/backend/internal/guard"
	"github.com/cleankili/backend/internal/models"
)

// AdminLocal is the fiber locals key under which RequireAdmin stores the
// resolved admin.
const AdminLocal = "admin"

type AuthMiddleware struct {
	guard *guard.Guard
}

func NewAuthMiddleware(g *guard.Guard) *AuthMiddleware {
	return &AuthMiddleware{guard: g}
}

// RequireAdmin resolves the bearer token to a verified admin and stores it
// in locals. Invalid, expired and unverified all map to 401; a store
// failure maps to 503.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := m.guard.CurrentAdmin(c.Context(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, guard.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "storage unavailable",
			})
		}

		c.Locals(AdminLocal, admin)
		return c.Next()
	}
}

// RequireSuperAdmin layers the role check on top of RequireAdmin and must
// run after it.
func (m *AuthMiddleware) RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := c.Locals(AdminLocal).(*models.Admin)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "admin not found in context",
			})
		}

		if err := m.guard.SuperAdmin(admin); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Next()
	}
}
