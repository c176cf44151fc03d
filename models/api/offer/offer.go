package offerapimodels

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	dbmodels "ofertas-backend/models/db"
)

// OfferData datos del formulario de alta/edición (también acepta JSON).
type OfferData struct {
	Position        string     `json:"puesto" form:"puesto"`                       // puesto
	CompanyName     string     `json:"empresa_razon" form:"empresa_razon"`         // razón social
	CompanyAddress  string     `json:"empresa_direccion" form:"empresa_direccion"` // dirección
	CompanyDistrict string     `json:"empresa_distrito" form:"empresa_distrito"`   // distrito
	Education       string     `json:"formacion" form:"formacion"`                 // formación requerida
	Skills          string     `json:"conocimientos" form:"conocimientos"`         // conocimientos separados por coma
	Experience      NumberText `json:"experiencia" form:"experiencia"`             // años de experiencia, número o texto
	MonthlyPay      NumberText `json:"pago_mensual" form:"pago_mensual"`           // pago mensual, número o texto
	Deadline        string     `json:"fecha_final" form:"fecha_final"`             // fecha final, texto libre
}

func (o OfferData) Validate() error {
	if strings.TrimSpace(o.Position) == "" {
		return &ValidationError{Message: "no se indicó el puesto"}
	}
	if strings.TrimSpace(o.CompanyName) == "" {
		return &ValidationError{Message: "no se indicó la razón social de la empresa"}
	}
	return nil
}

// ToRecord arma el documento para insertar. NroId y FechaCreacion los asigna el repositorio.
func (o OfferData) ToRecord() dbmodels.Offer {
	return dbmodels.Offer{
		Position: strings.TrimSpace(o.Position),
		Company: dbmodels.Company{
			LegalName: strings.TrimSpace(o.CompanyName),
			Address:   strings.TrimSpace(o.CompanyAddress),
			District:  strings.TrimSpace(o.CompanyDistrict),
		},
		Requirements: dbmodels.Requirements{
			Education: strings.TrimSpace(o.Education),
			Skills:    SplitList(o.Skills),
		},
		ExperienceYears: ParseIntOrZero(string(o.Experience)),
		MonthlyPay:      ParseIntOrZero(string(o.MonthlyPay)),
		Deadline:        strings.TrimSpace(o.Deadline),
	}
}

// ToUpdate devuelve una actualización con todos los campos del formulario.
func (o OfferData) ToUpdate() OfferUpdate {
	rec := o.ToRecord()
	return OfferUpdate{
		Position:        &rec.Position,
		CompanyName:     &rec.Company.LegalName,
		CompanyAddress:  &rec.Company.Address,
		CompanyDistrict: &rec.Company.District,
		Education:       &rec.Requirements.Education,
		Skills:          &rec.Requirements.Skills,
		Experience:      &rec.ExperienceYears,
		MonthlyPay:      &rec.MonthlyPay,
		Deadline:        &rec.Deadline,
	}
}

// OfferUpdate actualización parcial: los campos nil no se tocan.
type OfferUpdate struct {
	Position        *string   `json:"puesto,omitempty"`
	CompanyName     *string   `json:"empresa_razon,omitempty"`
	CompanyAddress  *string   `json:"empresa_direccion,omitempty"`
	CompanyDistrict *string   `json:"empresa_distrito,omitempty"`
	Education       *string   `json:"formacion,omitempty"`
	Skills          *[]string `json:"conocimientos,omitempty"`
	Experience      *int      `json:"experiencia,omitempty"`
	MonthlyPay      *int      `json:"pago_mensual,omitempty"`
	Deadline        *string   `json:"fecha_final,omitempty"`
}

func (u OfferUpdate) Validate() error {
	if u.Position != nil && strings.TrimSpace(*u.Position) == "" {
		return &ValidationError{Message: "el puesto no puede quedar vacío"}
	}
	if u.CompanyName != nil && strings.TrimSpace(*u.CompanyName) == "" {
		return &ValidationError{Message: "la razón social no puede quedar vacía"}
	}
	return nil
}

// Fields devuelve los campos a modificar con los nombres del documento.
func (u OfferUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Position != nil {
		fields[dbmodels.FieldPosition] = *u.Position
	}
	if u.CompanyName != nil {
		fields[dbmodels.FieldCompanyName] = *u.CompanyName
	}
	if u.CompanyAddress != nil {
		fields[dbmodels.FieldCompanyAddress] = *u.CompanyAddress
	}
	if u.CompanyDistrict != nil {
		fields[dbmodels.FieldCompanyDistrict] = *u.CompanyDistrict
	}
	if u.Education != nil {
		fields[dbmodels.FieldEducation] = *u.Education
	}
	if u.Skills != nil {
		skills := *u.Skills
		if skills == nil {
			skills = []string{}
		}
		fields[dbmodels.FieldSkills] = skills
	}
	if u.Experience != nil {
		fields[dbmodels.FieldExperience] = *u.Experience
	}
	if u.MonthlyPay != nil {
		fields[dbmodels.FieldMonthlyPay] = *u.MonthlyPay
	}
	if u.Deadline != nil {
		fields[dbmodels.FieldDeadline] = *u.Deadline
	}
	return fields
}

type OfferView struct {
	NroID        int64            `json:"NroId"`
	Position     string           `json:"Puesto"`
	Company      CompanyView      `json:"Empresa"`
	Requirements RequirementsView `json:"Requisitos"`
	Experience   int              `json:"Experiencia"`
	MonthlyPay   int              `json:"PagoMensual"`
	Deadline     string           `json:"FechaFinal"`
	CreatedAt    time.Time        `json:"FechaCreacion"`
	UpdatedAt    *time.Time       `json:"FechaActualizacion,omitempty"`
}

type CompanyView struct {
	LegalName string `json:"RazonSoc"`
	Address   string `json:"Direccion"`
	District  string `json:"Distrito"`
}

type RequirementsView struct {
	Education string   `json:"Formacion"`
	Skills    []string `json:"Conocimientos"`
}

// SkillsText conocimientos separados por coma, para formularios y listados.
func (v OfferView) SkillsText() string {
	return strings.Join(v.Requirements.Skills, ", ")
}

func OfferConvert(rec dbmodels.Offer) OfferView {
	skills := rec.Requirements.Skills
	if skills == nil {
		skills = []string{}
	}
	return OfferView{
		NroID:    rec.NroID,
		Position: rec.Position,
		Company: CompanyView{
			LegalName: rec.Company.LegalName,
			Address:   rec.Company.Address,
			District:  rec.Company.District,
		},
		Requirements: RequirementsView{
			Education: rec.Requirements.Education,
			Skills:    skills,
		},
		Experience: rec.ExperienceYears,
		MonthlyPay: rec.MonthlyPay,
		Deadline:   rec.Deadline,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func OfferListConvert(list []dbmodels.Offer) []OfferView {
	result := make([]OfferView, 0, len(list))
	for _, rec := range list {
		result = append(result, OfferConvert(rec))
	}
	return result
}

// SplitList separa por comas, recorta espacios y descarta elementos vacíos.
func SplitList(value string) []string {
	result := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func ParseIntOrZero(value string) int {
	n, ok := parseInt(value)
	if !ok {
		return 0
	}
	return n
}

// ParseIntOrNil devuelve nil si el valor está vacío o no es un entero.
func ParseIntOrNil(value string) *int {
	n, ok := parseInt(value)
	if !ok {
		return nil
	}
	return &n
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// parseInt toma el entero inicial del texto: "3 años" -> 3, "2.5" -> 2.
func parseInt(value string) (int, bool) {
	digits := leadingInt.FindString(strings.TrimSpace(value))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
