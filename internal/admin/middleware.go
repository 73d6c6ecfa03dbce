package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireAPIKey gates a route on the X-Admin-Key header. An empty configured
// key hard-fails every request (safer than accidentally open).
func RequireAPIKey(key string) fiber.Handler {
	key = strings.TrimSpace(key)
	if key == "" {
		return func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusInternalServerError, "admin key not configured")
		}
	}

	return func(c *fiber.Ctx) error {
		got := strings.TrimSpace(c.Get("X-Admin-Key"))
		if got == "" || got != key {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Next()
	}
}
