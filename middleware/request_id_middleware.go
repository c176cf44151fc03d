package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"ofertas-backend/fiberlog"
)

func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: fiberlog.RequestIDLocal,
	})
}

func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(fiberlog.RequestIDLocal).(string)
	return id
}
