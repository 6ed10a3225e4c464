package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"pelada-backend/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error kind onto an HTTP status and a uniform
// error body. Unknown errors are logged and come back as an opaque 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrBusinessRule), errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
		message = err.Error()
	default:
		log.Printf("[HTTP] unhandled error: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
	})
}

// principal reads the identity placed by the auth middleware.
func principal(c *fiber.Ctx) (userID, profile string) {
	if v, ok := c.Locals("user_id").(string); ok {
		userID = v
	}
	if v, ok := c.Locals("user_profile").(string); ok {
		profile = v
	}
	return userID, profile
}
