package config

import (
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr        string `default:"" env:"APP_HOST"`
		Port              int    `default:"3000" env:"PORT"`
		BodyLimitMB       int    `default:"4" env:"APP_BODY_LIMIT_MB"`
		SessionTTLMinutes int    `default:"60" env:"APP_SESSION_TTL_MINUTES"`
		ErrNotifyAddr     string `default:"" env:"APP_ERR_NOTIFY_ADDR"`
		SwaggerEnabled    *bool  `default:"true" env:"APP_SWAGGER_ENABLED"`
		SwaggerFilePath   string `default:"./docs/swagger.json" env:"APP_SWAGGER_FILE_PATH"`
	}
	Mongo struct {
		URI               string `default:"mongodb://localhost:27017" env:"MONGO_URI"`
		Database          string `default:"Ofertas" env:"MONGO_DB_NAME"`
		Collection        string `default:"Productos" env:"MONGO_COLLECTION"`
		CounterCollection string `default:"Contadores" env:"MONGO_COUNTER_COLLECTION"`
		ConnectTimeoutSec int    `default:"10" env:"MONGO_CONNECT_TIMEOUT_SEC"`
		PingTimeoutSec    int    `default:"2" env:"MONGO_PING_TIMEOUT_SEC"`
		CheckIntervalSec  int    `default:"5" env:"MONGO_CHECK_INTERVAL_SEC"`
		HealthCheckSec    int    `default:"60" env:"MONGO_HEALTH_CHECK_SEC"` // 0 desactiva la verificación periódica
	}
	// historial de cambios en postgres, desactivado por defecto
	History struct {
		Enabled        *bool  `default:"false" env:"HISTORY_ENABLED"`
		Host           string `default:"127.0.0.1" env:"HISTORY_DB_HOST"`
		Port           string `default:"5432" env:"HISTORY_DB_PORT"`
		Name           string `default:"ofertas" env:"HISTORY_DB_NAME"`
		User           string `default:"postgres" env:"HISTORY_DB_USER"`
		Password       string `default:"" env:"HISTORY_DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"HISTORY_DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"HISTORY_DB_DEBUG_MODE"`
	}
}

func configFiles() []string {
	var files []string
	if _, err := os.Stat("config.yml"); err == nil {
		files = append(files, "config.yml")
	}
	return files
}

// Load lee .env (si existe), luego los archivos indicados y las variables de entorno.
func Load(files ...string) (*Configuration, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(); err != nil {
			log.WithError(err).Warn("no se pudo leer el archivo .env")
		}
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, files...)
	if err != nil {
		return nil, errors.Wrap(err, "error leyendo la configuración")
	}
	if err = conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c Configuration) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGO_URI no puede estar vacío")
	}
	if c.Mongo.Database == "" {
		return errors.New("MONGO_DB_NAME no puede estar vacío")
	}
	if c.Mongo.Collection == "" {
		return errors.New("MONGO_COLLECTION no puede estar vacío")
	}
	if c.Mongo.CounterCollection == "" || c.Mongo.CounterCollection == c.Mongo.Collection {
		return errors.New("MONGO_COUNTER_COLLECTION debe ser distinta de MONGO_COLLECTION")
	}
	if c.App.Port <= 0 {
		return errors.Errorf("PORT inválido: %d", c.App.Port)
	}
	return nil
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf, err := Load(configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
