package healthworker

import (
	"context"
	"time"

	baseworker "ofertas-backend/lib/utils/base-worker"
)

const workerName = "mongo_health"

// Pinger lo implementa db.Manager.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartWorker verifica la conexión a MongoDB cada interval; reconecta si no responde.
func StartWorker(ctx context.Context, pinger Pinger, interval time.Duration) {
	if interval <= 0 {
		return
	}
	worker := baseworker.NewInstance(workerName, interval, interval)
	go worker.Run(ctx, func(ctx context.Context) {
		if err := pinger.Ping(ctx); err != nil {
			worker.GetLogger().WithError(err).Error("MongoDB no disponible")
		}
	})
}
