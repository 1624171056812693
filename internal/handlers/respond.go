package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/services"
)

// statusFor maps service error classes to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrRefreshInFlight):
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the standard error body.
func fail(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	status := fiber.StatusInternalServerError
	if err != nil {
		status = statusFor(err)
	}
	if errors.Is(err, services.ErrUnauthenticated) {
		body["redirect"] = "/login"
	}
	return c.Status(status).JSON(body)
}

// resultBody wraps a catalog fetch result, keeping the error message visible
// when the fallback dataset was served.
func resultBody[T any](result services.Result[T]) fiber.Map {
	body := fiber.Map{
		"data":   result.Data,
		"source": result.Source,
	}
	if result.Err != nil {
		body["error"] = result.Err.Error()
	}
	return body
}
