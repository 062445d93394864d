package importer

import (
	"errors"
	"fmt"
)

// ErrNotReconciled is returned by State for elements that have not been
// compared against a prior record yet.
var ErrNotReconciled = errors.New("element not reconciled")

// MissingAccessorError reports a field name that has no entry in the schema.
type MissingAccessorError struct {
	Field string
}

func (e *MissingAccessorError) Error() string {
	return fmt.Sprintf("no accessor for field %q", e.Field)
}

// NewMissingAccessorError creates a new MissingAccessorError.
func NewMissingAccessorError(field string) *MissingAccessorError {
	return &MissingAccessorError{Field: field}
}

// BindingError reports a cell value that cannot be stored in its target field.
type BindingError struct {
	Field string
	Value string
	Err   error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("bind %q to field %q: %v", e.Value, e.Field, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// NewBindingError creates a new BindingError.
func NewBindingError(field, value string, err error) *BindingError {
	return &BindingError{Field: field, Value: value, Err: err}
}
