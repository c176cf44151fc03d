package offerapimodels

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// NumberText valor numérico del formulario. En JSON acepta número, texto o null;
// el número se guarda como su texto y se interpreta igual que el campo del formulario.
type NumberText string

func (n *NumberText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) != 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*n = NumberText(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return errors.Errorf("valor numérico inválido: %s", string(data))
	}
	*n = NumberText(number.String())
	return nil
}
