package middleware

import (
	"log"
	"strings"

	"etalase/internal/models"
	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
)

// sessionKey is the Locals key the verified session is stored under.
const sessionKey = "session"

// AuthRequired is a Fiber middleware that checks for a valid bearer token
// and stores the resulting session in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		session, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// SessionFromCtx returns the session stored by AuthRequired, or nil when the
// request never passed the middleware.
func SessionFromCtx(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(sessionKey).(*models.Session)
	return session
}
