package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestContext: Request-ID + timeout per request (context diteruskan ke GORM).
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if dur := time.Since(start); dur > timeout/2 {
			log.Printf("[REQ][SLOW] id=%s %s %s dur=%s", id, c.Method(), c.OriginalURL(), dur)
		}
		return err
	}
}
