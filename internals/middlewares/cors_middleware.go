package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware: origins dari CORS_ALLOW_ORIGINS (dipisah koma).
func CorsMiddleware(origins string) fiber.Handler {
	parts := strings.Split(origins, ",")
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:  strings.Join(clean, ", "),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders: "Content-Disposition, X-Request-ID",
	})
}
