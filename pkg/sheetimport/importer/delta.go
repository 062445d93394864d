package importer

import "github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"

type deltaState int

const (
	deltasNotComputed deltaState = iota
	deltasAbsent
	deltasComputed
)

// deltaCache memoizes the deltas of an element. deltasComputed with an
// empty list means "no changes", which differs from deltasAbsent
// (no prior record).
type deltaCache struct {
	state  deltaState
	deltas []models.PropertyDelta
	err    error
}

// PropertyDeltas returns the changes of the declared diff fields between
// OldValue and Value. ok is false when there is no prior record. A diff
// field without accessor fails with *MissingAccessorError.
func (e *Element[T]) PropertyDeltas() ([]models.PropertyDelta, bool, error) {
	if e.deltas.state == deltasNotComputed {
		e.refreshDeltas()
	}
	switch e.deltas.state {
	case deltasAbsent:
		return nil, false, nil
	default:
		if e.deltas.err != nil {
			return nil, true, e.deltas.err
		}
		return append([]models.PropertyDelta{}, e.deltas.deltas...), true, nil
	}
}

func (e *Element[T]) refreshDeltas() {
	if e.oldValue == nil {
		e.deltas = deltaCache{state: deltasAbsent}
		return
	}
	deltas, err := e.computeDeltas()
	e.deltas = deltaCache{state: deltasComputed, deltas: deltas, err: err}
}

func (e *Element[T]) computeDeltas() ([]models.PropertyDelta, error) {
	deltas := []models.PropertyDelta{}
	for _, name := range e.diffFields {
		f, err := e.schema.Lookup(name)
		if err != nil {
			return nil, err
		}
		if f.Equal(e.value, e.oldValue) {
			continue
		}
		deltas = append(deltas, models.PropertyDelta{
			Field:    name,
			OldValue: e.render(f, e.oldValue),
			NewValue: e.render(f, e.value),
		})
	}
	if e.additional != nil {
		deltas = append(deltas, e.additional(e.value, e.oldValue)...)
	}
	return deltas, nil
}

func (e *Element[T]) render(f Field[T], rec *T) string {
	if e.formatter != nil {
		return e.formatter(f, rec)
	}
	return f.Format(rec)
}
