package importer

import (
	"fmt"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
)

// State is the lifecycle classification of a reconciled element.
type State int

const (
	StateNew State = iota
	StateModified
	StateUnmodified
	StateFaulty
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateModified:
		return "modified"
	case StateUnmodified:
		return "unmodified"
	case StateFaulty:
		return "faulty"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ElementOption configures an Element.
type ElementOption[T any] func(*Element[T])

// WithAdditionalDeltas registers a function contributing deltas beyond the
// declared diff fields. Its results are appended after the field deltas.
func WithAdditionalDeltas[T any](fn func(value, old *T) []models.PropertyDelta) ElementOption[T] {
	return func(e *Element[T]) { e.additional = fn }
}

// WithValueFormatter overrides how field values are rendered in deltas.
func WithValueFormatter[T any](fn func(f Field[T], rec *T) string) ElementOption[T] {
	return func(e *Element[T]) { e.formatter = fn }
}

// Element is one imported record together with its prior counterpart.
//
// Lifecycle queries (IsNew, IsModified, IsUnmodified) report false until
// the element is reconciled. Faults are orthogonal: a faulty element is
// never selected. Elements are not safe for concurrent mutation.
type Element[T any] struct {
	index      int
	schema     *Schema[T]
	diffFields []string
	additional func(value, old *T) []models.PropertyDelta
	formatter  func(f Field[T], rec *T) string

	value      *T
	oldValue   *T
	reconciled bool
	selected   bool
	faults     faultList
	deltas     deltaCache
}

// NewElement creates an unreconciled element at index. Only the fields in
// diffFields are compared; the list is fixed for the element's lifetime.
func NewElement[T any](index int, schema *Schema[T], diffFields []string, opts ...ElementOption[T]) *Element[T] {
	e := &Element[T]{
		index:      index,
		schema:     schema,
		diffFields: append([]string(nil), diffFields...),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.refreshDeltas()
	return e
}

// Index returns the element position within its batch.
func (e *Element[T]) Index() int { return e.index }

// DiffFields returns the declared comparable field names.
func (e *Element[T]) DiffFields() []string {
	return append([]string(nil), e.diffFields...)
}

// Value returns the imported record.
func (e *Element[T]) Value() *T { return e.value }

// SetValue replaces the imported record and recomputes the deltas. Changes
// made later through the record pointer are not observed until the next
// SetValue call.
func (e *Element[T]) SetValue(v *T) {
	e.value = v
	e.refreshDeltas()
}

// OldValue returns the prior record, or nil if there is none.
func (e *Element[T]) OldValue() *T { return e.oldValue }

// SetOldValue replaces the prior record and recomputes the deltas.
func (e *Element[T]) SetOldValue(v *T) {
	e.oldValue = v
	e.refreshDeltas()
}

// Reconciled reports whether the element was compared against prior state.
func (e *Element[T]) Reconciled() bool { return e.reconciled }

// SetReconciled sets the reconciled flag.
func (e *Element[T]) SetReconciled(r bool) { e.reconciled = r }

// Reconcile records old as the prior counterpart (nil for none) and marks
// the element reconciled.
func (e *Element[T]) Reconcile(old *T) {
	e.SetOldValue(old)
	e.reconciled = true
}

// Selected reports whether the element should be applied. It is always
// false for faulty elements.
func (e *Element[T]) Selected() bool {
	return e.selected && !e.IsFaulty()
}

// SetSelected marks the element for application. It has no effect while the
// element is faulty.
func (e *Element[T]) SetSelected(selected bool) {
	if e.IsFaulty() {
		e.selected = false
		return
	}
	e.selected = selected
}

// IsNew reports a reconciled element without prior record.
func (e *Element[T]) IsNew() bool {
	return e.reconciled && e.oldValue == nil
}

// IsModified reports a reconciled element with at least one delta.
func (e *Element[T]) IsModified() bool {
	if !e.reconciled || e.oldValue == nil {
		return false
	}
	deltas, ok, err := e.PropertyDeltas()
	return err == nil && ok && len(deltas) > 0
}

// IsUnmodified reports a reconciled element whose diff fields all equal
// their prior values.
func (e *Element[T]) IsUnmodified() bool {
	if !e.reconciled || e.oldValue == nil {
		return false
	}
	deltas, ok, err := e.PropertyDeltas()
	return err == nil && ok && len(deltas) == 0
}

// IsFaulty reports whether any fault is recorded.
func (e *Element[T]) IsFaulty() bool { return len(e.faults) > 0 }

// State classifies the element. Faulty takes precedence over the other
// states. It fails with ErrNotReconciled before reconciliation, and with the
// delta error if a diff field has no accessor.
func (e *Element[T]) State() (State, error) {
	if e.IsFaulty() {
		return StateFaulty, nil
	}
	if !e.reconciled {
		return 0, ErrNotReconciled
	}
	if e.oldValue == nil {
		return StateNew, nil
	}
	deltas, _, err := e.PropertyDeltas()
	if err != nil {
		return 0, err
	}
	if len(deltas) > 0 {
		return StateModified, nil
	}
	return StateUnmodified, nil
}

// PutFault records f, replacing a fault with the same key in place.
func (e *Element[T]) PutFault(f Fault) {
	e.faults.put(f)
}

// RemoveFault deletes the fault with key, if any.
func (e *Element[T]) RemoveFault(key string) {
	e.faults.remove(key)
}

// Fault returns the fault recorded under key.
func (e *Element[T]) Fault(key string) (Fault, bool) {
	return e.faults.get(key)
}

// Faults returns the recorded faults in insertion order.
func (e *Element[T]) Faults() []Fault {
	return append([]Fault(nil), e.faults...)
}
