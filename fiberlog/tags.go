package fiberlog

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagMethod    = "method"
	TagPath      = "path"
	TagRoute     = "route"
	TagURL       = "url"
	TagIP        = "ip"
	TagQuery     = "query"
	TagUA        = "user_agent"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagReferer   = "referer"
	TagBytesSent = "bytes_sent"
	RequestID    = "request_id"
)

// RequestIDLocal clave de c.Locals donde el middleware requestid deja el id.
const RequestIDLocal = "requestid"

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag devuelve el valor de un campo del log para la petición actual.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagRoute: func(c *fiber.Ctx, _ *data) interface{} {
			if r := c.Route(); r != nil {
				return r.Path
			}
			return ""
		},
		TagURL: func(c *fiber.Ctx, _ *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagQuery: func(c *fiber.Ctx, _ *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagUA: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, _ *data) interface{} {
			return string(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
			if !isTextResponse(c) {
				return ""
			}
			return string(c.Response().Body())
		},
		TagReferer: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Get(fiber.HeaderReferer)
		},
		TagBytesSent: func(c *fiber.Ctx, _ *data) interface{} {
			return len(c.Response().Body())
		},
		RequestID: func(c *fiber.Ctx, _ *data) interface{} {
			if id, ok := c.Locals(RequestIDLocal).(string); ok {
				return id
			}
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

// isTextResponse solo json y texto plano; las páginas html y los archivos exportados no se escriben en el log.
func isTextResponse(c *fiber.Ctx) bool {
	contentType := string(c.Response().Header.ContentType())
	return strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) ||
		strings.HasPrefix(contentType, fiber.MIMETextPlain)
}
