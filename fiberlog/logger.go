package fiberlog

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		if err != nil {
			// el error handler de fiber fija el status antes de escribir el log
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		if cfg.Skip != nil && cfg.Skip(c) {
			return err
		}

		var entry *log.Entry
		if cfg.Logger != nil {
			entry = cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		} else {
			entry = log.WithFields(getLogrusFields(ftm, c, d))
		}
		status := c.Response().StatusCode()
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error(getMessage(c))
		case status >= fiber.StatusMultipleChoices:
			entry.Warn(getMessage(c))
		default:
			entry.Info(getMessage(c))
		}
		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	if strings.HasPrefix(c.Path(), "/api") {
		return "petición api"
	}
	return "petición web"
}
