package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "ofertas-backend/models/db"
)

func AutoMigrateHistory(historyDB *gorm.DB) error {
	log.Info("ejecutando migraciones del historial")
	if err := historyDB.AutoMigrate(&dbmodels.OfferHistory{}); err != nil {
		return errors.Wrap(err, "error creando la estructura OfferHistory")
	}
	log.Info("migración terminada")
	return nil
}
