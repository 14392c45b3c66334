package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/metrics"
)

// ActorHeader cabecera opcional con el usuario que opera (no hay autenticación en este servicio).
const ActorHeader = "X-User-ID"

const localUserID = "user_id"

// ActorMiddleware copia ActorHeader a c.Locals para atribuir movimientos.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v := c.Get(ActorHeader); v != "" {
			c.Locals(localUserID, v)
		}
		return c.Next()
	}
}

// GetUserID obtiene el user_id del contexto (tras ActorMiddleware). Vacío si no se informó.
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(localUserID).(string)
	return v
}

// RequestLogger registra cada petición (método, ruta, estado, latencia) y alimenta las métricas HTTP.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		elapsed := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http")
		return err
	}
}
