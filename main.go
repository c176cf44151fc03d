package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"ofertas-backend/config"
	"ofertas-backend/controllers/pages"
	apiv1 "ofertas-backend/controllers/v1"
	"ofertas-backend/docs"
	"ofertas-backend/fiberlog"
	"ofertas-backend/initializers"
	"ofertas-backend/middleware"
	"ofertas-backend/web"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	services := initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		Views:     web.NewEngine(),
		BodyLimit: config.Conf.App.BodyLimitMB * 1024 * 1024,
	})
	app.Use(fiberRecover.New())
	app.Use(middleware.RequestID())

	loggerConfig := *services.LoggerConfig
	loggerConfig.Skip = func(c *fiber.Ctx) bool {
		return strings.HasPrefix(c.Path(), "/public") || strings.HasPrefix(c.Path(), "/swagger")
	}
	app.Use(fiberlog.New(loggerConfig))
	if config.Conf.App.ErrNotifyAddr != "" {
		app.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyAddr))
	}

	app.Use("/public", filesystem.New(filesystem.Config{
		Root: web.Public(),
	}))

	if *config.Conf.App.SwaggerEnabled {
		swaggerCfg := swagger.Config{
			Path:     "/swagger",
			FilePath: config.Conf.App.SwaggerFilePath,
		}
		if _, err := os.Stat(swaggerCfg.FilePath); err != nil {
			swaggerCfg.FileContent = docs.SwaggerJSON
		}
		app.Use(swagger.New(swaggerCfg))
	}

	//api
	api := app.Group("/api")
	apiv1.InitOfferApiRouters(api, services.Offers, services.XLS)

	//páginas
	app.Use(services.Flash.Handler())
	pages.InitPageRouters(app, services.Offers, services.Flash)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("deteniendo el servidor...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("error deteniendo el servidor")
		}
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		services.Close(closeCtx)
		log.Info("servidor detenido")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("el servidor HTTP terminó correctamente")
}
