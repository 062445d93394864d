package importer

import (
	"errors"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
)

// CellReader reads the typed value of a column in a row.
// *parser.Resolver implements it.
type CellReader interface {
	Read(row parser.Row, col parser.ColumnDef) models.Value
}

// Bind fills rec from the cells of row. Columns without a target and empty
// cells are skipped. Every failing column is reported: unknown targets as
// *MissingAccessorError, rejected values as *BindingError, joined with
// errors.Join. Columns that bind successfully are stored even when others
// fail.
func Bind[T any](rec *T, schema *Schema[T], cells CellReader, row parser.Row, cols []parser.ColumnDef) error {
	var errs []error
	for _, col := range cols {
		if col.Target == "" {
			continue
		}
		v := cells.Read(row, col)
		if v.IsEmpty() {
			continue
		}
		f, err := schema.Lookup(col.Target)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := f.Bind(rec, v); err != nil {
			errs = append(errs, NewBindingError(col.Target, v.String(), err))
		}
	}
	return errors.Join(errs...)
}

// CheckColumns reports column targets that have no accessor in schema.
func CheckColumns[T any](schema *Schema[T], cols []parser.ColumnDef) error {
	var errs []error
	for _, name := range parser.Columns(cols).Targets() {
		if _, ok := schema.Field(name); !ok {
			errs = append(errs, NewMissingAccessorError(name))
		}
	}
	return errors.Join(errs...)
}

// BindingFaults converts the errors returned by Bind into element faults.
// Errors of other types are returned as the second result.
func BindingFaults(err error) ([]Fault, error) {
	if err == nil {
		return nil, nil
	}
	var (
		faults []Fault
		other  []error
	)
	for _, e := range unjoin(err) {
		var be *BindingError
		if errors.As(e, &be) {
			faults = append(faults, BindingFailed{Field: be.Field, Value: be.Value, Reason: be.Err.Error()})
			continue
		}
		other = append(other, e)
	}
	return faults, errors.Join(other...)
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
