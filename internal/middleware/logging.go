package middleware

import (
	"errors"
	"time"

	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// Logging logs every HTTP request with its outcome.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration once the rest of the chain
// has run. Errors escaping the chain are logged at error level.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}

	l.logger.Info("http request completed",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", time.Since(start).Milliseconds())

	if err != nil {
		l.logger.Error("http request failed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"error", err.Error())
	}

	return err
}
