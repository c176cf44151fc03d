package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// Skip no escribe el log de la petición cuando devuelve true (estáticos, swagger)
	Skip func(c *fiber.Ctx) bool
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
