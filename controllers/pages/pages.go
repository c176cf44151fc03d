package pages

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"ofertas-backend/controllers"
	pdfexport "ofertas-backend/lib/export/pdf"
	offerhandler "ofertas-backend/lib/offer"
	"ofertas-backend/middleware"
	offerapimodels "ofertas-backend/models/api/offer"
)

const (
	layout        = "layouts/main"
	latestOffers  = 5
	crudPath      = "/crud"
	listingPath   = "/listado"
	exportAPIPath = "/api/ofertas/exportar"
)

type pagesController struct {
	controllers.BaseAPIController
	offers offerhandler.Provider
	flash  *middleware.Flash
}

func InitPageRouters(app fiber.Router, offers offerhandler.Provider, flash *middleware.Flash) {
	controller := pagesController{
		offers: offers,
		flash:  flash,
	}
	app.Get("/", controller.index)
	app.Get(listingPath, controller.listing)
	app.Route(crudPath, func(router fiber.Router) {
		router.Get("", controller.crud)
		router.Get("nuevo", controller.newForm)
		router.Post("nuevo", controller.create)
		router.Get("editar/:id", controller.editForm)
		router.Post("editar/:id", controller.update)
		router.Put("editar/:id", controller.update)
		router.Post("eliminar/:id", controller.delete)
		router.Delete("eliminar/:id", controller.delete)
		router.Get("pdf/:id", controller.pdf)
	})
}

func (c *pagesController) render(ctx *fiber.Ctx, view, title string, bind fiber.Map) error {
	success, errMsg := middleware.GetFlash(ctx)
	bind["Title"] = title
	bind["SuccessMsg"] = success
	bind["ErrorMsg"] = errMsg
	return ctx.Render(view, bind, layout)
}

func (c *pagesController) renderError(ctx *fiber.Ctx, msg string) error {
	ctx.Status(fiber.StatusInternalServerError)
	return c.render(ctx, "error", "Error", fiber.Map{"Message": msg})
}

// redirect guarda el aviso en la sesión y redirige; un fallo de la sesión no impide la redirección.
func (c *pagesController) redirect(ctx *fiber.Ctx, path string, success bool, msg string) error {
	var err error
	if success {
		err = c.flash.Success(ctx, msg)
	} else {
		err = c.flash.Error(ctx, msg)
	}
	if err != nil {
		c.GetLogger(ctx).WithError(err).Warn("no se pudo guardar el aviso")
	}
	return ctx.Redirect(path, fiber.StatusFound)
}

func (c *pagesController) index(ctx *fiber.Ctx) error {
	stats, err := c.offers.Statistics(ctx.UserContext())
	if err != nil {
		return c.renderError(ctx, "Error al cargar la página principal")
	}
	list, err := c.offers.List(ctx.UserContext())
	if err != nil {
		return c.renderError(ctx, "Error al cargar la página principal")
	}
	if len(list) > latestOffers {
		list = list[:latestOffers]
	}
	return c.render(ctx, "index", "Inicio - Sistema de Ofertas", fiber.Map{
		"Stats":  stats,
		"Offers": list,
	})
}

func (c *pagesController) crud(ctx *fiber.Ctx) error {
	list, err := c.offers.List(ctx.UserContext())
	if err != nil {
		return c.renderError(ctx, "Error al cargar el CRUD")
	}
	return c.render(ctx, "crud", "Gestión de Ofertas", fiber.Map{
		"Offers": list,
	})
}

func (c *pagesController) newForm(ctx *fiber.Ctx) error {
	return c.render(ctx, "editar", "Nueva Oferta", fiber.Map{
		"Offer": (*offerapimodels.OfferView)(nil),
	})
}

func (c *pagesController) create(ctx *fiber.Ctx) error {
	var payload offerapimodels.OfferData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.redirect(ctx, crudPath, false, "Error: "+err.Error())
	}
	nroID, err := c.offers.Create(ctx.UserContext(), payload)
	if err != nil {
		return c.redirect(ctx, crudPath, false, "Error: "+controllers.UserMessage(err, "Error al crear la oferta"))
	}
	return c.redirect(ctx, crudPath, true, fmt.Sprintf("Oferta creada exitosamente con ID: %d", nroID))
}

func (c *pagesController) editForm(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.redirect(ctx, crudPath, false, controllers.MsgNotFound)
	}
	item, err := c.offers.Get(ctx.UserContext(), nroID)
	if err != nil {
		return c.redirect(ctx, crudPath, false, controllers.UserMessage(err, "Error al cargar la oferta para editar"))
	}
	return c.render(ctx, "editar", "Editar Oferta", fiber.Map{
		"Offer": &item,
	})
}

func (c *pagesController) update(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.redirect(ctx, crudPath, false, "Error: "+controllers.MsgNotFound)
	}
	var payload offerapimodels.OfferData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.redirect(ctx, crudPath, false, "Error: "+err.Error())
	}
	_, err = c.offers.Update(ctx.UserContext(), nroID, payload.ToUpdate())
	if err != nil {
		return c.redirect(ctx, crudPath, false, "Error: "+controllers.UserMessage(err, "Error al actualizar la oferta"))
	}
	return c.redirect(ctx, crudPath, true, "Oferta actualizada exitosamente")
}

func (c *pagesController) delete(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.redirect(ctx, crudPath, false, "Error: "+controllers.MsgNotFound)
	}
	if err = c.offers.Delete(ctx.UserContext(), nroID); err != nil {
		return c.redirect(ctx, crudPath, false, "Error: "+controllers.UserMessage(err, "Error al eliminar la oferta"))
	}
	return c.redirect(ctx, crudPath, true, "Oferta eliminada exitosamente")
}

func (c *pagesController) listing(ctx *fiber.Ctx) error {
	var filter offerapimodels.OfferFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.redirect(ctx, listingPath, false, "Parámetros de búsqueda inválidos")
	}
	list, err := c.offers.Listing(ctx.UserContext(), filter)
	if err != nil {
		var validationErr *offerapimodels.ValidationError
		if errors.As(err, &validationErr) {
			return c.redirect(ctx, listingPath, false, validationErr.Message)
		}
		return c.renderError(ctx, "Error al cargar el listado")
	}
	exportURL := exportAPIPath
	if query := string(ctx.Request().URI().QueryString()); query != "" {
		exportURL += "?" + query
	}
	return c.render(ctx, "listado", "Listado de Ofertas", fiber.Map{
		"Offers":    list,
		"Filter":    filter,
		"ExportURL": exportURL,
	})
}

func (c *pagesController) pdf(ctx *fiber.Ctx) error {
	nroID, err := c.GetID(ctx)
	if err != nil {
		return c.redirect(ctx, crudPath, false, controllers.MsgNotFound)
	}
	item, err := c.offers.Get(ctx.UserContext(), nroID)
	if err != nil {
		return c.redirect(ctx, crudPath, false, controllers.UserMessage(err, "Error al cargar la oferta"))
	}
	file, err := pdfexport.GenerateOfferSheet(item)
	if err != nil {
		log.WithField("nro_id", nroID).WithError(err).Error("error generando el pdf de la oferta")
		return c.redirect(ctx, crudPath, false, "Error al generar el PDF")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="oferta-%d.pdf"`, nroID))
	return ctx.Send(file)
}
