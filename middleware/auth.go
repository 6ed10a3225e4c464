package middleware

import (
	"strings"

	"pelada-backend/services"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the bearer token and attaches the principal to the
// request context. Handlers read c.Locals("user_id") / c.Locals("user_profile");
// capability checks stay in the services.
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		principal, err := auth.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals("user_id", principal.ID)
		c.Locals("user_profile", principal.Profile)

		return c.Next()
	}
}
