package offerhandler

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	offerhistoryhandler "ofertas-backend/lib/offer-history"
	offerstore "ofertas-backend/lib/offer/store"
	offerapimodels "ofertas-backend/models/api/offer"
	dbmodels "ofertas-backend/models/db"
)

// NoCompanyName nombre con el que se cuentan las ofertas sin razón social.
const NoCompanyName = "Sin empresa"

type Provider interface {
	Create(ctx context.Context, data offerapimodels.OfferData) (nroID int64, err error)
	List(ctx context.Context) (list []offerapimodels.OfferView, err error)
	Get(ctx context.Context, nroID int64) (item offerapimodels.OfferView, err error)
	Update(ctx context.Context, nroID int64, data offerapimodels.OfferUpdate) (offerstore.UpdateResult, error)
	Delete(ctx context.Context, nroID int64) error
	Search(ctx context.Context, term string) (list []offerapimodels.OfferView, err error)
	SearchAdvanced(ctx context.Context, filter offerapimodels.AdvancedFilter) (list []offerapimodels.OfferView, err error)
	// Listing resuelve los parámetros de /listado: búsqueda por texto, filtros avanzados o todo.
	Listing(ctx context.Context, filter offerapimodels.OfferFilter) (list []offerapimodels.OfferView, err error)
	Statistics(ctx context.Context) (offerapimodels.Statistics, error)
	History(ctx context.Context, nroID int64) ([]offerapimodels.HistoryView, error)
}

func NewHandler(store offerstore.Provider, history offerhistoryhandler.Provider) Provider {
	if history == nil {
		history = offerhistoryhandler.NewDisabled()
	}
	return impl{
		store:   store,
		history: history,
	}
}

type impl struct {
	store   offerstore.Provider
	history offerhistoryhandler.Provider
}

func (i impl) Create(ctx context.Context, data offerapimodels.OfferData) (nroID int64, err error) {
	if err = data.Validate(); err != nil {
		return 0, err
	}
	rec := data.ToRecord()
	nroID, err = i.store.Create(ctx, rec)
	if err != nil {
		log.WithField("position", rec.Position).WithError(err).Error("error creando la oferta")
		return 0, errors.New("error creando la oferta")
	}
	rec.NroID = nroID
	i.getLogger(nroID).Info("oferta creada")
	i.history.Save(ctx, dbmodels.HistoryTypeAdded, rec, dbmodels.EntityChanges{Description: "Oferta creada"})
	return nroID, nil
}

func (i impl) List(ctx context.Context) ([]offerapimodels.OfferView, error) {
	list, err := i.store.List(ctx)
	if err != nil {
		log.WithError(err).Error("error leyendo las ofertas")
		return nil, errors.New("error leyendo las ofertas")
	}
	return offerapimodels.OfferListConvert(list), nil
}

func (i impl) Get(ctx context.Context, nroID int64) (offerapimodels.OfferView, error) {
	rec, err := i.store.GetByNroID(ctx, nroID)
	if err != nil {
		i.getLogger(nroID).WithError(err).Error("error leyendo la oferta")
		return offerapimodels.OfferView{}, errors.New("error leyendo la oferta")
	}
	if rec == nil {
		return offerapimodels.OfferView{}, offerstore.ErrNotFound
	}
	return offerapimodels.OfferConvert(*rec), nil
}

func (i impl) Update(ctx context.Context, nroID int64, data offerapimodels.OfferUpdate) (offerstore.UpdateResult, error) {
	logger := i.getLogger(nroID)
	if err := data.Validate(); err != nil {
		return offerstore.UpdateResult{}, err
	}
	fields := data.Fields()

	var old *dbmodels.Offer
	if i.history.Enabled() {
		rec, err := i.store.GetByNroID(ctx, nroID)
		if err != nil {
			logger.WithError(err).Error("error leyendo la oferta antes de actualizar")
			return offerstore.UpdateResult{}, errors.New("error actualizando la oferta")
		}
		if rec == nil {
			return offerstore.UpdateResult{}, offerstore.ErrNotFound
		}
		old = rec
	}

	result, err := i.store.Update(ctx, nroID, fields)
	if err != nil {
		if errors.Is(err, offerstore.ErrNotFound) {
			return offerstore.UpdateResult{}, err
		}
		logger.WithError(err).Error("error actualizando la oferta")
		return offerstore.UpdateResult{}, errors.New("error actualizando la oferta")
	}
	logger.WithField("modified", result.Modified).Info("oferta actualizada")

	if old != nil {
		changes := offerhistoryhandler.Diff(*old, fields)
		if len(changes) != 0 {
			i.history.Save(ctx, dbmodels.HistoryTypeUpdate, offerhistoryhandler.Apply(*old, fields), dbmodels.EntityChanges{
				Description: "Oferta actualizada",
				Data:        changes,
			})
		}
	}
	return result, nil
}

func (i impl) Delete(ctx context.Context, nroID int64) error {
	logger := i.getLogger(nroID)

	var old *dbmodels.Offer
	if i.history.Enabled() {
		rec, err := i.store.GetByNroID(ctx, nroID)
		if err != nil {
			logger.WithError(err).Error("error leyendo la oferta antes de eliminar")
			return errors.New("error eliminando la oferta")
		}
		if rec == nil {
			return offerstore.ErrNotFound
		}
		old = rec
	}

	err := i.store.Delete(ctx, nroID)
	if err != nil {
		if errors.Is(err, offerstore.ErrNotFound) {
			return err
		}
		logger.WithError(err).Error("error eliminando la oferta")
		return errors.New("error eliminando la oferta")
	}
	logger.Info("oferta eliminada")

	if old != nil {
		i.history.Save(ctx, dbmodels.HistoryTypeDelete, *old, dbmodels.EntityChanges{Description: "Oferta eliminada"})
	}
	return nil
}

func (i impl) Search(ctx context.Context, term string) ([]offerapimodels.OfferView, error) {
	list, err := i.store.Search(ctx, term)
	if err != nil {
		log.WithField("term", term).WithError(err).Error("error buscando ofertas")
		return nil, errors.New("error buscando ofertas")
	}
	return offerapimodels.OfferListConvert(list), nil
}

func (i impl) SearchAdvanced(ctx context.Context, filter offerapimodels.AdvancedFilter) ([]offerapimodels.OfferView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	list, err := i.store.SearchAdvanced(ctx, filter)
	if err != nil {
		log.WithField("filter", filter).WithError(err).Error("error en la búsqueda avanzada de ofertas")
		return nil, errors.New("error buscando ofertas")
	}
	return offerapimodels.OfferListConvert(list), nil
}

func (i impl) Listing(ctx context.Context, filter offerapimodels.OfferFilter) ([]offerapimodels.OfferView, error) {
	if filter.Search != "" {
		return i.Search(ctx, filter.Search)
	}
	if filter.IsAdvanced() {
		advanced, err := filter.Parse()
		if err != nil {
			return nil, err
		}
		if !advanced.IsEmpty() {
			return i.SearchAdvanced(ctx, advanced)
		}
	}
	return i.List(ctx)
}

func (i impl) Statistics(ctx context.Context) (offerapimodels.Statistics, error) {
	list, err := i.store.List(ctx)
	if err != nil {
		log.WithError(err).Error("error calculando las estadísticas")
		return offerapimodels.Statistics{}, errors.New("error calculando las estadísticas")
	}
	return calcStatistics(list), nil
}

func (i impl) History(ctx context.Context, nroID int64) ([]offerapimodels.HistoryView, error) {
	return i.history.List(ctx, nroID)
}

func (i impl) getLogger(nroID int64) *log.Entry {
	return log.WithField("nro_id", nroID)
}

// calcStatistics promedio redondeado (0.5 hacia arriba) solo sobre pagos positivos.
func calcStatistics(list []dbmodels.Offer) offerapimodels.Statistics {
	result := offerapimodels.Statistics{
		TotalOffers:  len(list),
		ByExperience: []offerapimodels.ExperienceCount{},
	}
	if len(list) == 0 {
		return result
	}
	companies := map[string]struct{}{}
	byExperience := map[int]int{}
	var paySum, payCount int64
	for _, rec := range list {
		name := rec.Company.LegalName
		if name == "" {
			name = NoCompanyName
		}
		companies[name] = struct{}{}
		byExperience[rec.ExperienceYears]++
		if rec.MonthlyPay > 0 {
			paySum += int64(rec.MonthlyPay)
			payCount++
		}
	}
	if payCount > 0 {
		result.AveragePay = int((2*paySum + payCount) / (2 * payCount))
	}
	result.UniqueCompanies = len(companies)
	for years, count := range byExperience {
		result.ByExperience = append(result.ByExperience, offerapimodels.ExperienceCount{Years: years, Count: count})
	}
	sort.Slice(result.ByExperience, func(a, b int) bool {
		return result.ByExperience[a].Years < result.ByExperience[b].Years
	})
	return result
}
