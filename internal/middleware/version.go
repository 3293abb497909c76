package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CurrentAPIVersion is assumed when a request carries no version header.
const CurrentAPIVersion = "1.0.0"

// VersionMiddleware resolves the X-Api-Version header, normalizes short
// forms, and makes the result available to handlers. The resolved version
// is echoed back so clients can see what they were served.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", CurrentAPIVersion)

		switch version {
		case "1", "1.0":
			version = "1.0.0"
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
