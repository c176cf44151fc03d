package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectHistory abre la base postgres donde se guarda el historial de ofertas.
func ConnectHistory(host string, port string, database string, user string, pass string, debugMode bool, migrate bool) (*gorm.DB, error) {
	dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", host, port, user, database, pass)
	historyDB, err := gorm.Open(postgres.Open(dbConnString), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error conectando a la base del historial")
	}
	if debugMode {
		historyDB.Logger = logger.Default.LogMode(logger.Info)
		historyDB = historyDB.Debug()
	}
	if migrate {
		if err = AutoMigrateHistory(historyDB); err != nil {
			return nil, err
		}
	}
	log.Info("servicio conectado a la base del historial")
	return historyDB, nil
}

func CloseHistory(historyDB *gorm.DB) error {
	if historyDB == nil {
		return nil
	}
	sqlDB, err := historyDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
