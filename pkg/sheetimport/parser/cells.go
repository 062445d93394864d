package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
)

// Resolver reads typed values from the cells of one workbook.
// It caches the date classification of cell styles and is not safe for
// concurrent use; create one Resolver per goroutine.
type Resolver struct {
	file       *excelize.File
	locale     language.Tag
	date1904   bool
	dateStyles map[int]bool
}

// NewResolver creates a resolver for f rendering text with the rules of tag.
func NewResolver(f *excelize.File, tag language.Tag) *Resolver {
	r := &Resolver{
		file:       f,
		locale:     tag,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}
	return r
}

// Locale returns the locale used for text rendering.
func (r *Resolver) Locale() language.Tag { return r.locale }

// Resolve extracts the typed value of a cell. It never fails: cells that
// cannot be interpreted in their nominal type resolve to their raw text.
func (r *Resolver) Resolve(ref models.CellRef) models.Value {
	axis, err := excelize.CoordinatesToCellName(ref.Col+1, ref.Row+1)
	if err != nil {
		return models.EmptyValue()
	}
	raw, err := r.file.GetCellValue(ref.Sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return models.EmptyValue()
	}

	cellType, err := r.file.GetCellType(ref.Sheet, axis)
	if err != nil {
		return models.TextValue(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		switch strings.ToLower(raw) {
		case "1", "true":
			return rawValue(models.BoolValue(true), raw)
		case "0", "false":
			return rawValue(models.BoolValue(false), raw)
		}
		return models.TextValue(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeError, excelize.CellTypeFormula:
		return models.TextValue(raw)
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return rawValue(models.DateValue(t), raw)
		}
		return models.TextValue(raw)
	}

	// Numbers and untyped cells: the stored number may be a date serial.
	return r.number(ref.Sheet, axis, raw)
}

// Read resolves the cell of row selected by col and applies the column's
// reader kind. Columns without a resolved index read as empty.
func (r *Resolver) Read(row Row, col ColumnDef) models.Value {
	if col.Index < 0 {
		return models.EmptyValue()
	}
	v := r.Resolve(models.CellRef{Sheet: row.Sheet, Row: row.Index, Col: col.Index})
	return r.ReadAs(v, col.Kind)
}

// ReadAs reinterprets v as kind. Values that cannot be converted are
// returned unchanged.
func (r *Resolver) ReadAs(v models.Value, kind ReaderKind) models.Value {
	if v.IsEmpty() {
		return v
	}
	switch kind {
	case ReadText:
		if v.Kind == models.KindText {
			return v
		}
		return rawValue(models.TextValue(v.String()), v.Raw)
	case ReadNumber:
		switch v.Kind {
		case models.KindText:
			if s, ok := CleanNumber(v.Text); ok {
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					return rawValue(models.NumberValue(f), v.Raw)
				}
			}
		case models.KindBool:
			if v.Bool {
				return rawValue(models.NumberValue(1), v.Raw)
			}
			return rawValue(models.NumberValue(0), v.Raw)
		}
	case ReadDate:
		switch v.Kind {
		case models.KindNumber:
			if t, err := excelize.ExcelDateToTime(v.Number, r.date1904); err == nil {
				return rawValue(models.DateValue(t), v.Raw)
			}
		case models.KindText:
			if t, ok := ParseDate(v.Text); ok {
				return rawValue(models.DateValue(t), v.Raw)
			}
		}
	case ReadBool:
		switch v.Kind {
		case models.KindText:
			if b, ok := ParseBool(v.Text); ok {
				return rawValue(models.BoolValue(b), v.Raw)
			}
		case models.KindNumber:
			if v.Number == 0 || v.Number == 1 {
				return rawValue(models.BoolValue(v.Number == 1), v.Raw)
			}
		}
	}
	return v
}

// Text renders the value of a cell for display using the resolver's locale.
func (r *Resolver) Text(ref models.CellRef) string {
	return FormatValue(r.Resolve(ref), r.locale)
}

func (r *Resolver) number(sheet, axis, raw string) models.Value {
	f, ok := parseNumber(raw)
	if !ok {
		return models.TextValue(raw)
	}
	if r.isDateCell(sheet, axis) {
		if t, err := excelize.ExcelDateToTime(f, r.date1904); err == nil {
			return rawValue(models.DateValue(t), raw)
		}
	}
	return rawValue(models.NumberValue(f), raw)
}

// isDateCell reports whether the cell's number format displays a date.
func (r *Resolver) isDateCell(sheet, axis string) bool {
	styleID, err := r.file.GetCellStyle(sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := r.dateStyles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := r.file.GetStyle(styleID); err == nil && style != nil {
		isDate = IsDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	r.dateStyles[styleID] = isDate
	return isDate
}

// parseNumber attempts to parse a stored cell value as a number.
func parseNumber(s string) (float64, bool) {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func rawValue(v models.Value, raw string) models.Value {
	v.Raw = raw
	return v
}
