// Package output provides serialization of import results.
package output

import (
	"encoding/json"
	"io"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
)

// ElementView is the serializable form of one imported element.
type ElementView struct {
	Index    int                    `json:"index"`
	Row      int                    `json:"row"` // one-based sheet row
	Status   string                 `json:"status"`
	Selected bool                   `json:"selected"`
	Values   map[string]string      `json:"values,omitempty"`
	Deltas   []models.PropertyDelta `json:"deltas,omitempty"`
	Faults   []string               `json:"faults,omitempty"`
}

// BatchView is the serializable form of an import batch.
type BatchView struct {
	ID        string               `json:"id"`
	BookName  string               `json:"book_name,omitempty"`
	Sheet     string               `json:"sheet"`
	HeaderRow int                  `json:"header_row"` // one-based
	Summary   models.ImportSummary `json:"summary"`
	Elements  []ElementView        `json:"elements"`
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v as JSON followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
