package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
)

// GenerationSource entrega la generación vigente de la caché derivada.
type GenerationSource interface {
	Generation(ctx context.Context) int64
}

// PageCache guarda las respuestas GET de los reportes. La clave incluye la generación,
// así una importación deja inalcanzables todas las páginas anteriores.
// Solo se guardan respuestas 200; los errores se recalculan en cada pedido.
func PageCache(ttl time.Duration, gen GenerationSource) fiber.Handler {
	return cache.New(cache.Config{
		// El middleware evalúa Next después del handler, con el status ya escrito.
		Next: func(c *fiber.Ctx) bool {
			return c.Response().StatusCode() != fiber.StatusOK
		},
		Expiration:   ttl,
		CacheControl: false,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "g" + strconv.FormatInt(gen.Generation(c.Context()), 10) + ":" + c.OriginalURL()
		},
	})
}
