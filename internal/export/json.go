package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dusk-indust/archlens/internal/model"
)

// WriteJSON writes m as indented JSON followed by a newline.
func WriteJSON(w io.Writer, m *model.Model) error {
	if m == nil {
		m = &model.Model{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}
