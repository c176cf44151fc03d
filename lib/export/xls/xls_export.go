package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	offerapimodels "ofertas-backend/models/api/offer"
)

type Provider interface {
	ExportOfferList(list []offerapimodels.OfferView) (*bytes.Buffer, error)
}

func NewHandler() Provider {
	return impl{}
}

type impl struct{}

const sheetName = "Ofertas"

var offerHeaders = []string{
	"NroId", "Puesto", "Empresa", "Dirección", "Distrito",
	"Formación", "Conocimientos", "Experiencia (años)", "Pago mensual", "Fecha final", "Fecha de creación",
}

func (i impl) ExportOfferList(list []offerapimodels.OfferView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("error cerrando el archivo xlsx")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, offerHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "error escribiendo la cabecera del xlsx")
	}
	if len(list) != 0 {
		_, err = writeOfferData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "error escribiendo los datos del xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "error renombrando la hoja del xlsx")
	}
	return f.WriteToBuffer()
}

func writeOfferData(f *excelize.File, sheet string, list []offerapimodels.OfferView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(offerHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		created := ""
		if !item.CreatedAt.IsZero() {
			created = item.CreatedAt.Format("02/01/2006")
		}
		values := []interface{}{
			item.NroID,
			item.Position,
			item.Company.LegalName,
			item.Company.Address,
			item.Company.District,
			item.Requirements.Education,
			item.SkillsText(),
			item.Experience,
			item.MonthlyPay,
			item.Deadline,
			created,
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return row, err
		}
	}
	return row, nil
}
