package offerapimodels

import (
	"time"

	dbmodels "ofertas-backend/models/db"
)

type HistoryView struct {
	ID          string                  `json:"id"`
	NroID       int64                   `json:"nro_id"`
	Action      dbmodels.ActionType     `json:"accion"`
	Position    string                  `json:"puesto"`
	CompanyName string                  `json:"empresa"`
	Skills      []string                `json:"conocimientos"`
	Description string                  `json:"descripcion,omitempty"`
	Changes     []dbmodels.FieldChanges `json:"cambios"`
	CreatedAt   time.Time               `json:"fecha"`
}

func HistoryConvert(rec dbmodels.OfferHistory) HistoryView {
	skills := []string(rec.Skills)
	if skills == nil {
		skills = []string{}
	}
	changes := rec.Changes.Data
	if changes == nil {
		changes = []dbmodels.FieldChanges{}
	}
	return HistoryView{
		ID:          rec.ID,
		NroID:       rec.NroID,
		Action:      rec.ActionType,
		Position:    rec.Position,
		CompanyName: rec.CompanyName,
		Skills:      skills,
		Description: rec.Changes.Description,
		Changes:     changes,
		CreatedAt:   rec.CreatedAt,
	}
}
