package sheetimport

import (
	"errors"
	"fmt"
)

// ErrNoHeader indicates that no header row could be located.
var ErrNoHeader = errors.New("no header row found")

// ImportError represents a structural error while importing a sheet.
type ImportError struct {
	SheetName string
	Row       int // zero-based; -1 when not row specific
	Err       error
}

func (e *ImportError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("import error in sheet %q: %v", e.SheetName, e.Err)
	}
	return fmt.Sprintf("import error in sheet %q row %d: %v", e.SheetName, e.Row+1, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(sheetName string, row int, err error) *ImportError {
	return &ImportError{
		SheetName: sheetName,
		Row:       row,
		Err:       err,
	}
}
