package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	offerapimodels "ofertas-backend/models/api/offer"
)

func TestExportOfferList(t *testing.T) {
	t.Run(`rows check`, func(t *testing.T) {
		list := []offerapimodels.OfferView{
			{
				NroID:    1,
				Position: "Ingeniero",
				Company:  offerapimodels.CompanyView{LegalName: "Acme", District: "Miraflores"},
				Requirements: offerapimodels.RequirementsView{
					Education: "Universitaria",
					Skills:    []string{"Go", "SQL"},
				},
				Experience: 3,
				MonthlyPay: 3000,
				CreatedAt:  time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
			},
			{NroID: 2, Position: "Analista", Requirements: offerapimodels.RequirementsView{Skills: []string{}}},
		}
		buf, err := NewHandler().ExportOfferList(list)
		require.Nil(t, err)

		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()

		rows, err := f.GetRows(sheetName)
		require.Nil(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, offerHeaders, rows[0])
		require.Equal(t, "Ingeniero", rows[1][1])
		require.Equal(t, "Go, SQL", rows[1][6])
		require.Equal(t, "3000", rows[1][8])
		require.Equal(t, "02/05/2024", rows[1][10])
		require.Equal(t, "Analista", rows[2][1])
	})

	t.Run(`empty list check`, func(t *testing.T) {
		buf, err := NewHandler().ExportOfferList(nil)
		require.Nil(t, err)

		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()

		rows, err := f.GetRows(sheetName)
		require.Nil(t, err)
		require.Len(t, rows, 1)
	})
}
