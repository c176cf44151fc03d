package offerapimodels

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	dbmodels "ofertas-backend/models/db"
)

func TestOfferData(t *testing.T) {
	t.Run(`ToRecord check`, func(t *testing.T) {
		data := OfferData{
			Position:        " Ingeniero ",
			CompanyName:     "Acme SAC",
			CompanyAddress:  "Av. Arequipa 123",
			CompanyDistrict: "Miraflores",
			Education:       "Universitaria",
			Skills:          "Go, MongoDB , ,Docker",
			Experience:      "3 años",
			MonthlyPay:      "abc",
			Deadline:        "2026-12-31",
		}
		rec := data.ToRecord()
		require.Equal(t, "Ingeniero", rec.Position)
		require.Equal(t, "Acme SAC", rec.Company.LegalName)
		require.Equal(t, "Miraflores", rec.Company.District)
		require.Equal(t, []string{"Go", "MongoDB", "Docker"}, rec.Requirements.Skills)
		require.Equal(t, 3, rec.ExperienceYears)
		require.Equal(t, 0, rec.MonthlyPay)
		require.Equal(t, int64(0), rec.NroID)
	})

	t.Run(`json numbers and text check`, func(t *testing.T) {
		var data OfferData
		err := json.Unmarshal([]byte(`{"puesto":"Dev","empresa_razon":"Acme","experiencia":3,"pago_mensual":"2500 soles"}`), &data)
		require.Nil(t, err)
		require.Equal(t, NumberText("3"), data.Experience)
		rec := data.ToRecord()
		require.Equal(t, 3, rec.ExperienceYears)
		require.Equal(t, 2500, rec.MonthlyPay)

		data = OfferData{}
		require.Nil(t, json.Unmarshal([]byte(`{"experiencia":null,"pago_mensual":4200.0}`), &data))
		require.Equal(t, NumberText(""), data.Experience)
		require.Equal(t, 4200, data.ToRecord().MonthlyPay)

		require.NotNil(t, json.Unmarshal([]byte(`{"experiencia":true}`), &data))
	})

	t.Run(`Validate check`, func(t *testing.T) {
		require.NotNil(t, OfferData{CompanyName: "Acme"}.Validate())
		require.NotNil(t, OfferData{Position: "Ingeniero", CompanyName: "  "}.Validate())
		require.Nil(t, OfferData{Position: "Ingeniero", CompanyName: "Acme"}.Validate())
	})

	t.Run(`ToUpdate sets every field check`, func(t *testing.T) {
		fields := OfferData{Position: "Ingeniero", CompanyName: "Acme"}.ToUpdate().Fields()
		require.Len(t, fields, 9)
		require.Equal(t, "Ingeniero", fields[dbmodels.FieldPosition])
		require.Equal(t, []string{}, fields[dbmodels.FieldSkills])
		require.Equal(t, 0, fields[dbmodels.FieldMonthlyPay])
	})
}

func TestOfferUpdate(t *testing.T) {
	t.Run(`partial Fields check`, func(t *testing.T) {
		pay := 4500
		position := "Analista"
		fields := OfferUpdate{MonthlyPay: &pay, Position: &position}.Fields()
		require.Equal(t, map[string]any{
			dbmodels.FieldMonthlyPay: 4500,
			dbmodels.FieldPosition:   "Analista",
		}, fields)
	})

	t.Run(`Validate check`, func(t *testing.T) {
		empty := " "
		require.NotNil(t, OfferUpdate{Position: &empty}.Validate())
		require.Nil(t, OfferUpdate{}.Validate())
	})
}

func TestHelpers(t *testing.T) {
	t.Run(`ParseIntOrZero check`, func(t *testing.T) {
		require.Equal(t, 0, ParseIntOrZero(""))
		require.Equal(t, 0, ParseIntOrZero("sin dato"))
		require.Equal(t, 12, ParseIntOrZero("12"))
		require.Equal(t, 2, ParseIntOrZero("2.5"))
		require.Equal(t, -1, ParseIntOrZero("-1"))
	})

	t.Run(`ParseIntOrNil check`, func(t *testing.T) {
		require.Nil(t, ParseIntOrNil(""))
		require.Nil(t, ParseIntOrNil("x"))
		v := ParseIntOrNil(" 7 ")
		require.NotNil(t, v)
		require.Equal(t, 7, *v)
	})

	t.Run(`SplitList check`, func(t *testing.T) {
		require.Equal(t, []string{}, SplitList(""))
		require.Equal(t, []string{"a", "b"}, SplitList(" a ,, b ,"))
	})
}

func TestOfferFilter(t *testing.T) {
	t.Run(`contradictory experience range check`, func(t *testing.T) {
		_, err := OfferFilter{ExpMin: "10", ExpMax: "5"}.Parse()
		require.NotNil(t, err)
		var rangeErr *ValidationError
		require.True(t, errors.As(err, &rangeErr))
		require.Equal(t, "la experiencia mínima no puede ser mayor que la máxima", err.Error())
	})

	t.Run(`contradictory pay range check`, func(t *testing.T) {
		_, err := OfferFilter{PayMin: "5000", PayMax: "1000"}.Parse()
		require.NotNil(t, err)
	})

	t.Run(`invalid numbers are absent check`, func(t *testing.T) {
		filter, err := OfferFilter{ExpMin: "diez", ExpMax: "5", Skills: "go, sql"}.Parse()
		require.Nil(t, err)
		require.Nil(t, filter.ExpMin)
		require.NotNil(t, filter.ExpMax)
		require.Equal(t, 5, *filter.ExpMax)
		require.Equal(t, []string{"go", "sql"}, filter.Skills)
		require.False(t, filter.IsEmpty())
	})

	t.Run(`IsAdvanced check`, func(t *testing.T) {
		require.False(t, OfferFilter{Search: "acme"}.IsAdvanced())
		require.True(t, OfferFilter{ExpMin: "1"}.IsAdvanced())
	})
}

func TestOfferConvert(t *testing.T) {
	view := OfferConvert(dbmodels.Offer{NroID: 3, Position: "Ingeniero"})
	require.Equal(t, int64(3), view.NroID)
	require.NotNil(t, view.Requirements.Skills)
	require.Equal(t, "", view.SkillsText())

	view = OfferConvert(dbmodels.Offer{Requirements: dbmodels.Requirements{Skills: []string{"Go", "SQL"}}})
	require.Equal(t, "Go, SQL", view.SkillsText())
}
