package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run(`defaults check`, func(t *testing.T) {
		conf, err := Load()
		require.Nil(t, err)
		require.Equal(t, 3000, conf.App.Port)
		require.Equal(t, "mongodb://localhost:27017", conf.Mongo.URI)
		require.Equal(t, "Ofertas", conf.Mongo.Database)
		require.Equal(t, "Productos", conf.Mongo.Collection)
		require.Equal(t, "Contadores", conf.Mongo.CounterCollection)
		require.Equal(t, 5, conf.Mongo.CheckIntervalSec)
		require.NotNil(t, conf.History.Enabled)
		require.Equal(t, false, *conf.History.Enabled)
		require.NotNil(t, conf.App.SwaggerEnabled)
		require.Equal(t, true, *conf.App.SwaggerEnabled)
	})

	t.Run(`env override check`, func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
		t.Setenv("MONGO_COLLECTION", "ofertas")
		t.Setenv("PORT", "8081")
		t.Setenv("HISTORY_ENABLED", "true")
		conf, err := Load()
		require.Nil(t, err)
		require.Equal(t, "mongodb://db.internal:27017", conf.Mongo.URI)
		require.Equal(t, "ofertas", conf.Mongo.Collection)
		require.Equal(t, 8081, conf.App.Port)
		require.Equal(t, true, *conf.History.Enabled)
	})

	t.Run(`same collection for counters check`, func(t *testing.T) {
		t.Setenv("MONGO_COLLECTION", "Contadores")
		_, err := Load()
		require.NotNil(t, err)
	})
}
