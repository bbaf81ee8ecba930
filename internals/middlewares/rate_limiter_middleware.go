package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "presensi_backend/internals/helpers"
)

func ipLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(100, 1*time.Minute, "❌ Too many requests. Please try again later.")
}

// Import menulis ribuan baris per request, jadi lebih ketat.
func ImportRateLimiter() fiber.Handler {
	return ipLimiter(10, 1*time.Minute, "❌ Too many import requests. Wait a minute before uploading again.")
}
