package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ops/pkg/logger"
)

// Cabeceras y Locals del colaborador HTTP. La autenticación es externa: el gateway
// propaga el usuario en HeaderUserID.
const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"

	LocalUserID    = "user_id"
	LocalRequestID = "request_id"
)

// ActorMiddleware copia el usuario y el request id a c.Locals (genera uno si no viene).
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalUserID, c.Get(HeaderUserID))
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(HeaderRequestID, reqID)
		return c.Next()
	}
}

// AccessLog registra método, ruta, estado y latencia de cada petición.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", localString(c, LocalRequestID)).
			Msg("http")
		return err
	}
}

// GetUserID devuelve el usuario que ejecuta la operación ("" si no vino cabecera).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
