// Package offertest implementación en memoria del Provider de ofertas para las pruebas de los controladores.
package offertest

import (
	"context"
	"sync"

	offerhandler "ofertas-backend/lib/offer"
	offerstore "ofertas-backend/lib/offer/store"
	offerapimodels "ofertas-backend/models/api/offer"
)

var _ offerhandler.Provider = (*Fake)(nil)

// Fake guarda las ofertas en memoria. Err, si no es nil, lo devuelven todas las operaciones.
type Fake struct {
	mu          sync.Mutex
	seq         int64
	Offers      []offerapimodels.OfferView
	HistoryRows []offerapimodels.HistoryView
	Err         error

	LastFilter *offerapimodels.OfferFilter
	LastUpdate *offerapimodels.OfferUpdate
}

func New(offers ...offerapimodels.OfferView) *Fake {
	f := &Fake{Offers: offers}
	for _, item := range offers {
		if item.NroID > f.seq {
			f.seq = item.NroID
		}
	}
	return f
}

func (f *Fake) Create(_ context.Context, data offerapimodels.OfferData) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := data.Validate(); err != nil {
		return 0, err
	}
	if f.Err != nil {
		return 0, f.Err
	}
	f.seq++
	item := offerapimodels.OfferConvert(data.ToRecord())
	item.NroID = f.seq
	f.Offers = append(f.Offers, item)
	return item.NroID, nil
}

func (f *Fake) List(context.Context) ([]offerapimodels.OfferView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]offerapimodels.OfferView{}, f.Offers...), nil
}

func (f *Fake) Get(_ context.Context, nroID int64) (offerapimodels.OfferView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return offerapimodels.OfferView{}, f.Err
	}
	idx := f.index(nroID)
	if idx < 0 {
		return offerapimodels.OfferView{}, offerstore.ErrNotFound
	}
	return f.Offers[idx], nil
}

func (f *Fake) Update(_ context.Context, nroID int64, data offerapimodels.OfferUpdate) (offerstore.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := data.Validate(); err != nil {
		return offerstore.UpdateResult{}, err
	}
	if f.Err != nil {
		return offerstore.UpdateResult{}, f.Err
	}
	idx := f.index(nroID)
	if idx < 0 {
		return offerstore.UpdateResult{}, offerstore.ErrNotFound
	}
	f.LastUpdate = &data
	item := &f.Offers[idx]
	if data.Position != nil {
		item.Position = *data.Position
	}
	if data.CompanyName != nil {
		item.Company.LegalName = *data.CompanyName
	}
	if data.MonthlyPay != nil {
		item.MonthlyPay = *data.MonthlyPay
	}
	if data.Experience != nil {
		item.Experience = *data.Experience
	}
	if data.Skills != nil {
		item.Requirements.Skills = *data.Skills
	}
	return offerstore.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (f *Fake) Delete(_ context.Context, nroID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	idx := f.index(nroID)
	if idx < 0 {
		return offerstore.ErrNotFound
	}
	f.Offers = append(f.Offers[:idx], f.Offers[idx+1:]...)
	return nil
}

func (f *Fake) Search(ctx context.Context, _ string) ([]offerapimodels.OfferView, error) {
	return f.List(ctx)
}

func (f *Fake) SearchAdvanced(ctx context.Context, filter offerapimodels.AdvancedFilter) ([]offerapimodels.OfferView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return f.List(ctx)
}

func (f *Fake) Listing(ctx context.Context, filter offerapimodels.OfferFilter) ([]offerapimodels.OfferView, error) {
	f.mu.Lock()
	f.LastFilter = &filter
	f.mu.Unlock()
	if filter.Search == "" && filter.IsAdvanced() {
		if _, err := filter.Parse(); err != nil {
			return nil, err
		}
	}
	return f.List(ctx)
}

func (f *Fake) Statistics(ctx context.Context) (offerapimodels.Statistics, error) {
	list, err := f.List(ctx)
	if err != nil {
		return offerapimodels.Statistics{}, err
	}
	stats := offerapimodels.Statistics{TotalOffers: len(list)}
	companies := map[string]struct{}{}
	sum, count := 0, 0
	for _, item := range list {
		companies[item.Company.LegalName] = struct{}{}
		if item.MonthlyPay > 0 {
			sum += item.MonthlyPay
			count++
		}
	}
	if count > 0 {
		stats.AveragePay = sum / count
	}
	stats.UniqueCompanies = len(companies)
	return stats, nil
}

func (f *Fake) History(context.Context, int64) ([]offerapimodels.HistoryView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]offerapimodels.HistoryView{}, f.HistoryRows...), nil
}

func (f *Fake) index(nroID int64) int {
	for idx, item := range f.Offers {
		if item.NroID == nroID {
			return idx
		}
	}
	return -1
}
