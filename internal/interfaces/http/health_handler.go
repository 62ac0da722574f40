package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifica la conexión a la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde ok si la base responde; 503 si no. Sin db solo confirma que el proceso vive.
func Health(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": service, "database": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
