package dbmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nombres de campos del documento, compatibles con la colección existente.
const (
	FieldNroID           = "NroId"
	FieldPosition        = "Puesto"
	FieldCompany         = "Empresa"
	FieldCompanyName     = "Empresa.RazonSoc"
	FieldCompanyAddress  = "Empresa.Direccion"
	FieldCompanyDistrict = "Empresa.Distrito"
	FieldRequirements    = "Requisitos"
	FieldEducation       = "Requisitos.Formacion"
	FieldSkills          = "Requisitos.Conocimientos"
	FieldExperience      = "Experiencia"
	FieldMonthlyPay      = "PagoMensual"
	FieldDeadline        = "FechaFinal"
	FieldCreatedAt       = "FechaCreacion"
	FieldUpdatedAt       = "FechaActualizacion"
)

type Offer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	NroID           int64              `bson:"NroId"`
	Position        string             `bson:"Puesto"`
	Company         Company            `bson:"Empresa"`
	Requirements    Requirements       `bson:"Requisitos"`
	ExperienceYears int                `bson:"Experiencia"`
	MonthlyPay      int                `bson:"PagoMensual"`
	Deadline        string             `bson:"FechaFinal"`
	CreatedAt       time.Time          `bson:"FechaCreacion"`
	UpdatedAt       *time.Time         `bson:"FechaActualizacion,omitempty"`
}

type Company struct {
	LegalName string `bson:"RazonSoc"`
	Address   string `bson:"Direccion"`
	District  string `bson:"Distrito"`
}

type Requirements struct {
	Education string   `bson:"Formacion"`
	Skills    []string `bson:"Conocimientos"`
}

// SequenceCounter guarda el último NroId asignado por colección.
type SequenceCounter struct {
	Name      string `bson:"_id"`
	LastValue int64  `bson:"seq"`
}
