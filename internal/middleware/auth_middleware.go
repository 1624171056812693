package middleware

import (
	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/services"
)

// TokenRequired gates the orders and account screens on the presence of a
// stored session token. The token is opaque; there is no refresh or
// server-side validation, only the redirect-to-login path.
func TokenRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := authService.Token(); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message":  "Please login to continue",
				"redirect": "/login",
			})
		}
		return c.Next()
	}
}
