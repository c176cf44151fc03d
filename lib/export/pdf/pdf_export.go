package pdfexport

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	offerapimodels "ofertas-backend/models/api/offer"
)

const (
	fontFamily  = "Helvetica"
	labelWidth  = 55
	lineHeight  = 8
	titleHeight = 12
)

// GenerateOfferSheet ficha de una oferta en A4. Usa fuentes base, el texto se pasa a cp1252.
func GenerateOfferSheet(item offerapimodels.OfferView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateOfferSheet panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(fmt.Sprintf("Oferta %d", item.NroID)), false)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, titleHeight, tr(item.Position), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "I", 11)
	pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf("Oferta N° %d", item.NroID)), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, row := range sheetRows(item) {
		pdf.SetFont(fontFamily, "B", 11)
		pdf.CellFormat(labelWidth, lineHeight, tr(row.label), "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 11)
		pdf.MultiCell(0, lineHeight, tr(row.value), "", "L", false)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, errors.Wrap(err, "error generando el pdf de la oferta")
	}
	return buf.Bytes(), nil
}

type sheetRow struct {
	label string
	value string
}

func sheetRows(item offerapimodels.OfferView) []sheetRow {
	rows := []sheetRow{
		{"Empresa", item.Company.LegalName},
		{"Dirección", item.Company.Address},
		{"Distrito", item.Company.District},
		{"Formación", item.Requirements.Education},
		{"Conocimientos", item.SkillsText()},
		{"Experiencia", strconv.Itoa(item.Experience) + " años"},
		{"Pago mensual", strconv.Itoa(item.MonthlyPay)},
		{"Fecha final", item.Deadline},
	}
	if !item.CreatedAt.IsZero() {
		rows = append(rows, sheetRow{"Fecha de creación", item.CreatedAt.Format("02/01/2006")})
	}
	if item.UpdatedAt != nil {
		rows = append(rows, sheetRow{"Última actualización", item.UpdatedAt.Format("02/01/2006 15:04")})
	}
	for idx := range rows {
		if rows[idx].value == "" {
			rows[idx].value = "-"
		}
	}
	return rows
}
