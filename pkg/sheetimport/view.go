package sheetimport

import (
	"errors"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/output"
)

// Status names the state of an element for display: new, modified,
// unmodified, faulty, unreconciled or error.
func Status[T any](el *importer.Element[T]) string {
	state, err := el.State()
	switch {
	case errors.Is(err, importer.ErrNotReconciled):
		return "unreconciled"
	case err != nil:
		return "error"
	}
	return state.String()
}

// View returns the serializable form of the batch. Record values are
// rendered through the schema.
func (b *Batch[T]) View(bookName string) output.BatchView {
	v := output.BatchView{
		ID:        b.ID,
		BookName:  bookName,
		Sheet:     b.Sheet,
		HeaderRow: b.HeaderRow + 1,
		Summary:   b.Summary(),
		Elements:  make([]output.ElementView, 0, len(b.elements)),
	}
	for i, el := range b.elements {
		ev := output.ElementView{
			Index:    el.Index(),
			Row:      b.rows[i] + 1,
			Status:   Status(el),
			Selected: el.Selected(),
			Values:   make(map[string]string),
		}
		for _, f := range b.schema.Fields() {
			if s := f.Format(el.Value()); s != "" {
				ev.Values[f.Name()] = s
			}
		}
		if deltas, ok, err := el.PropertyDeltas(); ok && err == nil {
			ev.Deltas = deltas
		}
		for _, f := range el.Faults() {
			ev.Faults = append(ev.Faults, f.Message())
		}
		v.Elements = append(v.Elements, ev)
	}
	return v
}
