package offerhistoryhandler

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	dbmodels "ofertas-backend/models/db"
)

type fakeStore struct {
	created []dbmodels.OfferHistory
	list    []dbmodels.OfferHistory
	err     error
}

func (f *fakeStore) Create(_ context.Context, rec dbmodels.OfferHistory) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, rec)
	return "id", nil
}

func (f *fakeStore) ListByOffer(_ context.Context, _ int64) ([]dbmodels.OfferHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func sampleOffer() dbmodels.Offer {
	return dbmodels.Offer{
		NroID:    7,
		Position: "Ingeniero",
		Company:  dbmodels.Company{LegalName: "Acme", District: "Miraflores"},
		Requirements: dbmodels.Requirements{
			Education: "Universitaria",
			Skills:    []string{"Go"},
		},
		ExperienceYears: 2,
		MonthlyPay:      3000,
	}
}

func TestDiff(t *testing.T) {
	t.Run(`only changed fields check`, func(t *testing.T) {
		changes := Diff(sampleOffer(), map[string]any{
			dbmodels.FieldPosition:   "Ingeniero",
			dbmodels.FieldMonthlyPay: 3500,
			dbmodels.FieldSkills:     []string{"Go", "SQL"},
		})
		require.Equal(t, []dbmodels.FieldChanges{
			{Field: dbmodels.FieldMonthlyPay, OldValue: 3000, NewValue: 3500},
			{Field: dbmodels.FieldSkills, OldValue: []string{"Go"}, NewValue: []string{"Go", "SQL"}},
		}, changes)
	})

	t.Run(`no changes check`, func(t *testing.T) {
		changes := Diff(sampleOffer(), map[string]any{dbmodels.FieldExperience: 2})
		require.Len(t, changes, 0)
	})

	t.Run(`unknown field ignored check`, func(t *testing.T) {
		changes := Diff(sampleOffer(), map[string]any{"Otro": 1})
		require.Len(t, changes, 0)
	})
}

func TestApply(t *testing.T) {
	rec := Apply(sampleOffer(), map[string]any{
		dbmodels.FieldCompanyName: "Globex",
		dbmodels.FieldExperience:  5,
	})
	require.Equal(t, "Globex", rec.Company.LegalName)
	require.Equal(t, 5, rec.ExperienceYears)
	require.Equal(t, "Ingeniero", rec.Position)
}

func TestSave(t *testing.T) {
	t.Run(`row saved check`, func(t *testing.T) {
		store := &fakeStore{}
		handler := NewHandler(store)
		rec := sampleOffer()
		rec.Requirements.Skills = nil
		handler.Save(context.TODO(), dbmodels.HistoryTypeAdded, rec, dbmodels.EntityChanges{Description: "alta"})
		require.Len(t, store.created, 1)
		require.Equal(t, int64(7), store.created[0].NroID)
		require.Equal(t, dbmodels.HistoryTypeAdded, store.created[0].ActionType)
		require.Equal(t, "Acme", store.created[0].CompanyName)
		require.NotNil(t, store.created[0].Skills)
	})

	t.Run(`store error is swallowed check`, func(t *testing.T) {
		store := &fakeStore{err: errors.New("sin conexión")}
		handler := NewHandler(store)
		require.NotPanics(t, func() {
			handler.Save(context.TODO(), dbmodels.HistoryTypeDelete, sampleOffer(), dbmodels.EntityChanges{})
		})
	})
}

func TestList(t *testing.T) {
	t.Run(`list check`, func(t *testing.T) {
		store := &fakeStore{list: []dbmodels.OfferHistory{
			{NroID: 7, ActionType: dbmodels.HistoryTypeAdded, Position: "Ingeniero"},
			{NroID: 7, ActionType: dbmodels.HistoryTypeUpdate, Changes: dbmodels.EntityChanges{
				Data: []dbmodels.FieldChanges{{Field: dbmodels.FieldMonthlyPay, OldValue: 1, NewValue: 2}},
			}},
		}}
		list, err := NewHandler(store).List(context.TODO(), 7)
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Equal(t, []string{}, list[0].Skills)
		require.Len(t, list[1].Changes, 1)
	})

	t.Run(`store error check`, func(t *testing.T) {
		store := &fakeStore{err: errors.New("sin conexión")}
		_, err := NewHandler(store).List(context.TODO(), 7)
		require.NotNil(t, err)
	})

	t.Run(`disabled check`, func(t *testing.T) {
		handler := NewDisabled()
		require.False(t, handler.Enabled())
		list, err := handler.List(context.TODO(), 7)
		require.Nil(t, err)
		require.Len(t, list, 0)
	})
}
