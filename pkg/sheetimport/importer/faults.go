package importer

import "fmt"

// Fault is a data problem recorded on an element. An element with at least
// one fault is faulty and cannot be selected. The set of fault types is
// closed: ReferenceNotFound, ValidationFailed and BindingFailed.
type Fault interface {
	// Key identifies the fault on its element, usually the field name.
	Key() string
	// Message describes the fault for reports.
	Message() string

	fault()
}

// ReferenceNotFound records a field whose value refers to an unknown entity.
type ReferenceNotFound struct {
	Field string `json:"field"`
	Ref   string `json:"ref"`
}

func (f ReferenceNotFound) Key() string { return f.Field }
func (f ReferenceNotFound) Message() string {
	return fmt.Sprintf("%s: reference %q not found", f.Field, f.Ref)
}
func (ReferenceNotFound) fault() {}

// ValidationFailed records a field value that violates a rule.
type ValidationFailed struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (f ValidationFailed) Key() string     { return f.Field }
func (f ValidationFailed) Message() string { return fmt.Sprintf("%s: %s", f.Field, f.Reason) }
func (ValidationFailed) fault()            {}

// BindingFailed records a cell value that could not be stored in its field.
type BindingFailed struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (f BindingFailed) Key() string { return f.Field }
func (f BindingFailed) Message() string {
	return fmt.Sprintf("%s: cannot use %q: %s", f.Field, f.Value, f.Reason)
}
func (BindingFailed) fault() {}

// faultList keeps faults in insertion order with unique keys.
type faultList []Fault

func (l *faultList) put(f Fault) {
	for i, existing := range *l {
		if existing.Key() == f.Key() {
			(*l)[i] = f
			return
		}
	}
	*l = append(*l, f)
}

func (l *faultList) remove(key string) {
	for i, existing := range *l {
		if existing.Key() == key {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return
		}
	}
}

func (l faultList) get(key string) (Fault, bool) {
	for _, f := range l {
		if f.Key() == key {
			return f, true
		}
	}
	return nil, false
}
