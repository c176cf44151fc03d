package initializers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"ofertas-backend/config"
	"ofertas-backend/db"
	"ofertas-backend/fiberlog"
	xlsexport "ofertas-backend/lib/export/xls"
	healthworker "ofertas-backend/lib/health-worker"
	offerhandler "ofertas-backend/lib/offer"
	offerhistoryhandler "ofertas-backend/lib/offer-history"
	offerhistorystore "ofertas-backend/lib/offer-history/store"
	offerstore "ofertas-backend/lib/offer/store"
	initchecker "ofertas-backend/lib/utils/init-checker"
	"ofertas-backend/middleware"
)

// Services dependencias de la aplicación, creadas una vez en el arranque.
type Services struct {
	LoggerConfig *fiberlog.Config
	Manager      *db.Manager
	HistoryDB    *gorm.DB
	Offers       offerhandler.Provider
	XLS          xlsexport.Provider
	Flash        *middleware.Flash
}

func InitAllServices(ctx context.Context) *Services {
	services := &Services{LoggerConfig: InitLogger()}
	config.InitConfig()
	services.Manager = InitDBConnection(ctx)
	services.HistoryDB = InitHistoryDB()

	store := offerstore.NewInstance(services.Manager, config.Conf.Mongo.Collection, config.Conf.Mongo.CounterCollection)
	if err := store.EnsureIndexes(ctx); err != nil {
		panic(err.Error())
	}
	history := offerhistoryhandler.NewDisabled()
	if services.HistoryDB != nil {
		history = offerhistoryhandler.NewHandler(offerhistorystore.NewInstance(services.HistoryDB))
	}
	services.Offers = offerhandler.NewHandler(store, history)
	services.XLS = xlsexport.NewHandler()
	services.Flash = middleware.NewFlash(session.New(session.Config{
		Expiration: time.Duration(config.Conf.App.SessionTTLMinutes) * time.Minute,
	}))

	initchecker.CheckInit(
		"mongo", services.Manager,
		"offers", services.Offers,
		"xls", services.XLS,
		"flash", services.Flash,
	)
	healthworker.StartWorker(ctx, services.Manager, time.Duration(config.Conf.Mongo.HealthCheckSec)*time.Second)
	log.WithField("history", history.Enabled()).Info("servicios inicializados")
	return services
}

// Close cierra las conexiones abiertas en InitAllServices.
func (s *Services) Close(ctx context.Context) {
	if err := s.Manager.Close(ctx); err != nil {
		log.WithError(err).Error("error cerrando la conexión a MongoDB")
	}
	if err := db.CloseHistory(s.HistoryDB); err != nil {
		log.WithError(err).Error("error cerrando la base del historial")
	}
}
