package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	offerstore "ofertas-backend/lib/offer/store"
	"ofertas-backend/middleware"
	apimodels "ofertas-backend/models/api"
	offerapimodels "ofertas-backend/models/api/offer"
)

const (
	MsgNotFound  = "Oferta no encontrada"
	MsgInvalidID = "Identificador de oferta inválido"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		c.GetLogger(ctx).WithError(err).Error("error leyendo los datos de la petición")
		return errors.New("no se pudieron leer los datos de la petición")
	}
	return nil
}

// GetID NroId de la ruta; ErrInvalidID si no es un entero positivo.
func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (int64, error) {
	return offerstore.ParseNroID(ctx.Params("id"))
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.WithField("path", ctx.Path()).
		WithField("method", ctx.Method())
	if id := middleware.GetRequestID(ctx); id != "" {
		logger = logger.WithField("request_id", id)
	}
	return logger
}

// UserMessage texto para el usuario: los errores conocidos se muestran tal cual,
// el resto con el mensaje genérico.
func UserMessage(err error, genericMsg string) string {
	switch {
	case errors.Is(err, offerstore.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, offerstore.ErrInvalidID):
		return MsgInvalidID
	}
	var validationErr *offerapimodels.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return genericMsg
}

// ErrorStatus código HTTP para el error devuelto por la capa de ofertas.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, offerstore.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, offerstore.ErrInvalidID):
		return fiber.StatusBadRequest
	}
	var validationErr *offerapimodels.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// SendError respuesta json de error; solo los errores internos se escriben en el log.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, genericMsg string) error {
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(genericMsg)
	}
	return ctx.Status(status).JSON(apimodels.NewError(UserMessage(err, genericMsg)))
}
