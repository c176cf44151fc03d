package initializers

import (
	"context"
	"time"

	"gorm.io/gorm"
	"ofertas-backend/config"
	"ofertas-backend/db"
)

func InitDBConnection(ctx context.Context) *db.Manager {
	manager, err := db.NewManager(db.Options{
		URI:            config.Conf.Mongo.URI,
		Database:       config.Conf.Mongo.Database,
		ConnectTimeout: time.Duration(config.Conf.Mongo.ConnectTimeoutSec) * time.Second,
		PingTimeout:    time.Duration(config.Conf.Mongo.PingTimeoutSec) * time.Second,
		CheckInterval:  time.Duration(config.Conf.Mongo.CheckIntervalSec) * time.Second,
	})
	if err != nil {
		panic(err.Error())
	}
	if _, err = manager.Connect(ctx); err != nil {
		panic(err.Error())
	}
	return manager
}

// InitHistoryDB nil si el historial está desactivado.
func InitHistoryDB() *gorm.DB {
	conf := config.Conf.History
	if conf.Enabled == nil || !*conf.Enabled {
		return nil
	}
	historyDB, err := db.ConnectHistory(conf.Host, conf.Port, conf.Name, conf.User, conf.Password,
		*conf.DebugMode, *conf.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}
	return historyDB
}
