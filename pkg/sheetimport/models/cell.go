// Package models defines data structures shared by the import packages.
package models

import (
	"strconv"
	"time"
)

// CellRef addresses a single cell of a sheet.
type CellRef struct {
	// Sheet is the sheet name owning the cell.
	Sheet string `json:"sheet"`
	// Row is the row index (0-based).
	Row int `json:"row"`
	// Col is the column index (0-based).
	Col int `json:"col"`
}

// ValueKind identifies the scalar type held by a Value.
type ValueKind int

const (
	// KindEmpty marks a blank or missing cell.
	KindEmpty ValueKind = iota
	// KindText marks a string value.
	KindText
	// KindNumber marks a numeric value.
	KindNumber
	// KindBool marks a boolean value.
	KindBool
	// KindDate marks a date or date-time value.
	KindDate
)

// String returns the lowercase kind name.
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Value is a typed scalar read from a cell.
type Value struct {
	// Kind is the resolved scalar type.
	Kind ValueKind `json:"kind"`
	// Text holds the string for KindText.
	Text string `json:"text,omitempty"`
	// Number holds the value for KindNumber.
	Number float64 `json:"number,omitempty"`
	// Bool holds the value for KindBool.
	Bool bool `json:"bool,omitempty"`
	// Time holds the value for KindDate.
	Time time.Time `json:"time,omitempty"`
	// Raw is the unformatted cell content as stored in the document.
	Raw string `json:"raw,omitempty"`
}

// EmptyValue returns a value of KindEmpty.
func EmptyValue() Value { return Value{} }

// TextValue returns a value of KindText.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s, Raw: s} }

// NumberValue returns a value of KindNumber.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// BoolValue returns a value of KindBool.
func BoolValue(b bool) Value {
	raw := "0"
	if b {
		raw = "1"
	}
	return Value{Kind: KindBool, Bool: b, Raw: raw}
}

// DateValue returns a value of KindDate.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Time: t, Raw: t.Format(time.RFC3339)} }

// IsEmpty reports whether the value carries no data.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// String renders the value without locale rules.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
