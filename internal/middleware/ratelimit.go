package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// PublicSubmissionLimiter throttles the anonymous listing intake per source IP.
// The per-contact-number quota is enforced separately at the service layer.
func PublicSubmissionLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status":    fiber.StatusTooManyRequests,
				"message":   "Too many submissions, try again later",
				"ok":        false,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"url":       c.OriginalURL(),
				"type":      "rateLimit",
			})
		},
	})
}
