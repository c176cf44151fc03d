package dbmodels

import "github.com/lib/pq"

type OfferHistory struct {
	BaseModel
	NroID       int64          `gorm:"index"`
	ActionType  ActionType     `gorm:"type:varchar(32)"`
	Position    string         `gorm:"type:varchar(255)"`
	CompanyName string         `gorm:"type:varchar(255)"`
	Skills      pq.StringArray `gorm:"type:text[]"`
	Changes     EntityChanges  `gorm:"type:jsonb"`
}

type ActionType string

const (
	HistoryTypeAdded  ActionType = "added"  // Oferta creada
	HistoryTypeUpdate ActionType = "update" // Oferta actualizada
	HistoryTypeDelete ActionType = "delete" // Oferta eliminada
)
