// Package parser reads typed cell values and column layouts from workbooks.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ReaderKind declares how the cells of a column are interpreted.
type ReaderKind int

const (
	// ReadAuto keeps the type stored in the cell.
	ReadAuto ReaderKind = iota
	// ReadText renders any value as text.
	ReadText
	// ReadNumber parses text as a number.
	ReadNumber
	// ReadDate converts date serials and date text to dates.
	ReadDate
	// ReadBool converts yes/no style text and 0/1 to booleans.
	ReadBool
)

// ParseReaderKind maps a kind name ("text", "number", ...) to a ReaderKind.
func ParseReaderKind(s string) (ReaderKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ReadAuto, nil
	case "text", "string":
		return ReadText, nil
	case "number", "numeric", "decimal":
		return ReadNumber, nil
	case "date":
		return ReadDate, nil
	case "bool", "boolean":
		return ReadBool, nil
	}
	return ReadAuto, fmt.Errorf("unknown reader kind %q", s)
}

// ColumnDef declares how one column maps onto a record field.
type ColumnDef struct {
	// Index is the zero-based column index, or -1 to resolve by Header.
	Index int
	// Header is the column title, matched case-insensitively.
	Header string
	// Kind selects the value reader.
	Kind ReaderKind
	// Target is the record field fed by this column; empty for none.
	Target string
	// Required fails Resolve when the header is missing.
	Required bool
}

// Column declares a column located by its header title.
func Column(header, target string) ColumnDef {
	return ColumnDef{Index: -1, Header: header, Target: target}
}

// ColumnAt declares a column located by its zero-based index.
func ColumnAt(index int, target string) ColumnDef {
	return ColumnDef{Index: index, Target: target}
}

// As returns a copy of c reading values as kind.
func (c ColumnDef) As(kind ReaderKind) ColumnDef {
	c.Kind = kind
	return c
}

// MustExist returns a copy of c that is required to be present.
func (c ColumnDef) MustExist() ColumnDef {
	c.Required = true
	return c
}

// Label returns the header title, or "#<index>" for index-addressed columns.
func (c ColumnDef) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return fmt.Sprintf("#%d", c.Index)
}

// MissingColumnError reports a required column whose header was not found.
type MissingColumnError struct {
	Header string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Header)
}

// Columns is a set of column definitions for one sheet. Order is irrelevant.
type Columns []ColumnDef

// Resolve returns a copy with header-addressed columns pinned to their index
// in header (as built by Sheet.HeaderIndex). Optional columns that are not
// found keep index -1 and read as empty.
func (cs Columns) Resolve(header map[string]int) (Columns, error) {
	out := make(Columns, len(cs))
	var errs []error
	for i, c := range cs {
		if c.Index < 0 && c.Header != "" {
			if pos, ok := header[strings.ToLower(strings.TrimSpace(c.Header))]; ok {
				c.Index = pos
			} else if c.Required {
				errs = append(errs, &MissingColumnError{Header: c.Header})
			}
		}
		out[i] = c
	}
	return out, errors.Join(errs...)
}

// Targets returns the distinct target field names in declaration order.
func (cs Columns) Targets() []string {
	seen := make(map[string]bool, len(cs))
	var out []string
	for _, c := range cs {
		if c.Target == "" || seen[c.Target] {
			continue
		}
		seen[c.Target] = true
		out = append(out, c.Target)
	}
	return out
}

// Row addresses one row of a sheet.
type Row struct {
	// Sheet is the sheet name.
	Sheet string
	// Index is the zero-based row index.
	Index int
}
