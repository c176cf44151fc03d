package offerhistoryhandler

import (
	"context"
	"reflect"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	offerhistorystore "ofertas-backend/lib/offer-history/store"
	offerapimodels "ofertas-backend/models/api/offer"
	dbmodels "ofertas-backend/models/db"
)

type Provider interface {
	// Enabled false cuando el historial está desactivado en la configuración.
	Enabled() bool
	Save(ctx context.Context, action dbmodels.ActionType, rec dbmodels.Offer, changes dbmodels.EntityChanges)
	List(ctx context.Context, nroID int64) ([]offerapimodels.HistoryView, error)
}

func NewHandler(store offerhistorystore.Provider) Provider {
	return impl{
		store: store,
	}
}

// NewDisabled historial apagado: no guarda nada y lista vacío.
func NewDisabled() Provider {
	return disabled{}
}

type impl struct {
	store offerhistorystore.Provider
}

func (i impl) Enabled() bool {
	return true
}

// Save nunca devuelve error: un fallo del historial no debe romper la operación principal.
func (i impl) Save(ctx context.Context, action dbmodels.ActionType, rec dbmodels.Offer, changes dbmodels.EntityChanges) {
	logger := log.WithField("nro_id", rec.NroID).
		WithField("action", action).
		WithField("description", changes.Description)
	historyRec := dbmodels.OfferHistory{
		NroID:       rec.NroID,
		ActionType:  action,
		Position:    rec.Position,
		CompanyName: rec.Company.LegalName,
		Skills:      rec.Requirements.Skills,
		Changes:     changes,
	}
	if historyRec.Skills == nil {
		historyRec.Skills = []string{}
	}
	_, err := i.store.Create(ctx, historyRec)
	if err != nil {
		logger.WithError(err).Error("error guardando el historial de la oferta")
	}
}

func (i impl) List(ctx context.Context, nroID int64) ([]offerapimodels.HistoryView, error) {
	list, err := i.store.ListByOffer(ctx, nroID)
	if err != nil {
		log.WithField("nro_id", nroID).WithError(err).Error("error leyendo el historial de la oferta")
		return nil, errors.New("error leyendo el historial de la oferta")
	}
	result := make([]offerapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, offerapimodels.HistoryConvert(rec))
	}
	return result, nil
}

type disabled struct{}

func (disabled) Enabled() bool {
	return false
}

func (disabled) Save(context.Context, dbmodels.ActionType, dbmodels.Offer, dbmodels.EntityChanges) {}

func (disabled) List(context.Context, int64) ([]offerapimodels.HistoryView, error) {
	return []offerapimodels.HistoryView{}, nil
}

// Diff compara la oferta guardada con los campos a modificar; solo devuelve los que cambian.
func Diff(old dbmodels.Offer, fields map[string]any) []dbmodels.FieldChanges {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	result := []dbmodels.FieldChanges{}
	for _, name := range names {
		oldValue, ok := fieldValue(old, name)
		if !ok {
			continue
		}
		newValue := fields[name]
		if reflect.DeepEqual(oldValue, newValue) {
			continue
		}
		result = append(result, dbmodels.FieldChanges{
			Field:    name,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}
	return result
}

// Apply devuelve una copia de la oferta con los campos ya modificados.
func Apply(rec dbmodels.Offer, fields map[string]any) dbmodels.Offer {
	for name, value := range fields {
		switch name {
		case dbmodels.FieldPosition:
			rec.Position, _ = value.(string)
		case dbmodels.FieldCompanyName:
			rec.Company.LegalName, _ = value.(string)
		case dbmodels.FieldCompanyAddress:
			rec.Company.Address, _ = value.(string)
		case dbmodels.FieldCompanyDistrict:
			rec.Company.District, _ = value.(string)
		case dbmodels.FieldEducation:
			rec.Requirements.Education, _ = value.(string)
		case dbmodels.FieldSkills:
			rec.Requirements.Skills, _ = value.([]string)
		case dbmodels.FieldExperience:
			rec.ExperienceYears, _ = value.(int)
		case dbmodels.FieldMonthlyPay:
			rec.MonthlyPay, _ = value.(int)
		case dbmodels.FieldDeadline:
			rec.Deadline, _ = value.(string)
		}
	}
	return rec
}

func fieldValue(rec dbmodels.Offer, name string) (any, bool) {
	switch name {
	case dbmodels.FieldPosition:
		return rec.Position, true
	case dbmodels.FieldCompanyName:
		return rec.Company.LegalName, true
	case dbmodels.FieldCompanyAddress:
		return rec.Company.Address, true
	case dbmodels.FieldCompanyDistrict:
		return rec.Company.District, true
	case dbmodels.FieldEducation:
		return rec.Requirements.Education, true
	case dbmodels.FieldSkills:
		if rec.Requirements.Skills == nil {
			return []string{}, true
		}
		return rec.Requirements.Skills, true
	case dbmodels.FieldExperience:
		return rec.ExperienceYears, true
	case dbmodels.FieldMonthlyPay:
		return rec.MonthlyPay, true
	case dbmodels.FieldDeadline:
		return rec.Deadline, true
	}
	return nil, false
}
