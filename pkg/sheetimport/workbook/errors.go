package workbook

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a supported spreadsheet format.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrSheetIndex indicates a sheet position outside the document's sheet list.
var ErrSheetIndex = errors.New("sheet index out of range")

// ErrSheetRemoved indicates a sheet handle whose sheet was removed from the document.
var ErrSheetRemoved = errors.New("sheet was removed")

// ErrSheetName indicates an empty or otherwise unusable sheet name.
var ErrSheetName = errors.New("invalid sheet name")

// ErrDateStyleNeedsPattern is returned by EnsureNumericStyle for NumericDate;
// date styles depend on a pattern and are created by EnsureDateStyle.
var ErrDateStyleNeedsPattern = errors.New("date styles require a pattern, use EnsureDateStyle")

// IOError represents a failure to open, parse or write a document.
type IOError struct {
	Op   string // "open", "write", "save"
	Path string // file name, if known
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("workbook %s %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("workbook %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
