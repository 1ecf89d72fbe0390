package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// RequestLogger registra cada petición (método, ruta, estado, latencia, request id) vía zerolog.
// Debe montarse después de requestid.New() para que el header X-Request-ID ya esté presente.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.With("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler fije el estado antes de loguear
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("petición HTTP")
		return nil
	}
}

// UseMiddleware monta la cadena común: recover, request id, CORS y log de peticiones.
func UseMiddleware(app *fiber.App, log *logger.Logger, corsOrigins string) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(RequestLogger(log))
}
