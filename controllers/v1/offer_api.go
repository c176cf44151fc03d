package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"ofertas-backend/controllers"
	xlsexport "ofertas-backend/lib/export/xls"
	offerhandler "ofertas-backend/lib/offer"
	apimodels "ofertas-backend/models/api"
	offerapimodels "ofertas-backend/models/api/offer"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type offerApiController struct {
	controllers.BaseAPIController
	offers offerhandler.Provider
	xls    xlsexport.Provider
}

func InitOfferApiRouters(app fiber.Router, offers offerhandler.Provider, xls xlsexport.Provider) {
	controller := offerApiController{
		offers: offers,
		xls:    xls,
	}
	app.Get("estadisticas", controller.statistics)
	app.Route("ofertas", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("buscar", controller.search)
		router.Get("exportar", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Patch("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Get("historial", controller.history)
		})
	})
}

// @Summary Estadísticas
// @Tags Ofertas
// @Description Total de ofertas, salario promedio y empresas únicas
// @Success 200 {object} apimodels.Response{data=offerapimodels.Statistics}
// @Failure 500 {object} apimodels.Response
// @router /api/estadisticas [get]
func (c *offerApiController) statistics(ctx *fiber.Ctx) error {
	stats, err := c.offers.Statistics(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener estadísticas")
	}
	return ctx.JSON(apimodels.NewResponse(stats))
}

// @Summary Listado
// @Tags Ofertas
// @Description Todas las ofertas ordenadas por NroId; acepta los mismos filtros que /listado
// @Param	buscar		query	string	false	"texto en puesto o empresa"
// @Param	formacion	query	string	false	"formación"
// @Param	conocimientos	query	string	false	"conocimientos separados por coma"
// @Param	exp_min		query	int	false	"experiencia mínima"
// @Param	exp_max		query	int	false	"experiencia máxima"
// @Param	salario_min	query	int	false	"salario mínimo"
// @Param	salario_max	query	int	false	"salario máximo"
// @Success 200 {object} apimodels.Response{data=[]offerapimodels.OfferView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas [get]
func (c *offerApiController) list(ctx *fiber.Ctx) error {
	var filter offerapimodels.OfferFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("parámetros de búsqueda inválidos"))
	}
	list, err := c.offers.Listing(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener ofertas")
	}
	return ctx.JSON(apimodels.NewResponse(list))
}

// @Summary Búsqueda
// @Tags Ofertas
// @Description Búsqueda sin distinguir mayúsculas en puesto o razón social
// @Param	q	query	string	true	"texto a buscar"
// @Success 200 {object} apimodels.Response{data=[]offerapimodels.OfferView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas/buscar [get]
func (c *offerApiController) search(ctx *fiber.Ctx) error {
	term := ctx.Query("q")
	if term == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("no se indicó el texto a buscar"))
	}
	list, err := c.offers.Search(ctx.UserContext(), term)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al buscar ofertas")
	}
	return ctx.JSON(apimodels.NewResponse(list))
}

// @Summary Exportar
// @Tags Ofertas
// @Description Listado en xlsx, con los mismos filtros que /api/ofertas
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas/exportar [get]
func (c *offerApiController) export(ctx *fiber.Ctx) error {
	var filter offerapimodels.OfferFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("parámetros de búsqueda inválidos"))
	}
	list, err := c.offers.Listing(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al exportar ofertas")
	}
	buf, err := c.xls.ExportOfferList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al exportar ofertas")
	}
	ctx.Set(fiber.HeaderContentType, xlsxMIME)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="ofertas.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// @Summary Alta
// @Tags Ofertas
// @Description Crea una oferta y devuelve su NroId; experiencia y pago_mensual aceptan número o texto
// @Param	body body	offerapimodels.OfferData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas [post]
func (c *offerApiController) create(ctx *fiber.Ctx) error {
	var payload offerapimodels.OfferData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	nroID, err := c.offers.Create(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al crear la oferta")
	}
	return ctx.JSON(apimodels.NewResponse(nroID))
}

// @Summary Oferta
// @Tags Ofertas
// @Param	id	path	int	true	"NroId"
// @Success 200 {object} apimodels.Response{data=offerapimodels.OfferView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas/{id} [get]
func (c *offerApiController) get(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	item, err := c.offers.Get(ctx.UserContext(), nroID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("nro_id", nroID), err, "Error al obtener la oferta")
	}
	return ctx.JSON(apimodels.NewResponse(item))
}

// @Summary Actualización parcial
// @Tags Ofertas
// @Description Solo se modifican los campos presentes en el cuerpo
// @Param	id	path	int	true	"NroId"
// @Param	body body	offerapimodels.OfferUpdate	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas/{id} [patch]
func (c *offerApiController) update(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	var payload offerapimodels.OfferUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	_, err = c.offers.Update(ctx.UserContext(), nroID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("nro_id", nroID), err, "Error al actualizar la oferta")
	}
	return ctx.JSON(apimodels.NewResponse(nil))
}

// @Summary Baja
// @Tags Ofertas
// @Param	id	path	int	true	"NroId"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas/{id} [delete]
func (c *offerApiController) delete(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	if err = c.offers.Delete(ctx.UserContext(), nroID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("nro_id", nroID), err, "Error al eliminar la oferta")
	}
	return ctx.JSON(apimodels.NewResponse(nil))
}

// @Summary Historial
// @Tags Ofertas
// @Description Cambios registrados de la oferta; vacío si el historial está desactivado
// @Param	id	path	int	true	"NroId"
// @Success 200 {object} apimodels.Response{data=[]offerapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/ofertas/{id}/historial [get]
func (c *offerApiController) history(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	list, err := c.offers.History(ctx.UserContext(), nroID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("nro_id", nroID), err, "Error al obtener el historial")
	}
	return ctx.JSON(apimodels.NewResponse(list))
}
