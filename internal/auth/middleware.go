package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const localsKey = "user_id"

// Middleware gates protected routes. Every failure mode answers the same way;
// the response body never says why the token was rejected.
func Middleware(v Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		userID, err := v.Verify(c.UserContext(), token)
		if err != nil || userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		c.Locals(localsKey, userID)
		return c.Next()
	}
}

// UserID returns the identity stored by Middleware, or "" when unset.
// Handlers pass this explicitly into every repo call.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(localsKey).(string)
	return uid
}

// DevTokenHandler mints an HS256 token for local testing. Wired up only when
// ENV=dev and the local JWT verifier is active.
func DevTokenHandler(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub := strings.TrimSpace(c.Query("user"))
		if sub == "" {
			sub = "11111111-1111-1111-1111-111111111111"
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": sub,
			"exp": time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString(secret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"token": signed})
	}
}
