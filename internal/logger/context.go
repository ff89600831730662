package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest returns an app-logger entry enriched with the request context.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	}
	if rid := c.Get("X-Request-ID"); rid != "" {
		fields["requestId"] = rid
	}
	return GetAppLogger().WithFields(fields)
}
