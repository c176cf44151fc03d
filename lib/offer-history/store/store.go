package offerhistorystore

import (
	"context"

	"github.com/pkg/errors"
	dbmodels "ofertas-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.OfferHistory) (id string, err error)
	ListByOffer(ctx context.Context, nroID int64) (list []dbmodels.OfferHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.OfferHistory) (id string, err error) {
	err = i.db.
		WithContext(ctx).
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "error guardando el historial de la oferta")
	}
	return rec.ID, nil
}

func (i impl) ListByOffer(ctx context.Context, nroID int64) (list []dbmodels.OfferHistory, err error) {
	list = []dbmodels.OfferHistory{}
	err = i.db.
		WithContext(ctx).
		Model(dbmodels.OfferHistory{}).
		Where("nro_id = ?", nroID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "error leyendo el historial de la oferta")
	}
	return list, nil
}
