package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type EntityChanges struct {
	Description string         `json:"description"` // Comentario
	Data        []FieldChanges `json:"data"`        // Lista de cambios
}

type FieldChanges struct {
	Field    string `json:"field"`     // Campo modificado
	OldValue any    `json:"old_value"` // Valor anterior
	NewValue any    `json:"new_value"` // Valor nuevo
}

func (j EntityChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *EntityChanges) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		return nil
	default:
		return errors.Errorf("tipo no soportado para EntityChanges: %T", value)
	}
	return json.Unmarshal(raw, j)
}
