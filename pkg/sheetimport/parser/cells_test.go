package parser

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
)

// newTestFile saves a workbook built by fill and reopens it, so values are
// read back through the stored XML.
func newTestFile(t *testing.T, fill func(f *excelize.File)) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	fill(f)

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile), "Failed to save test file")
	require.NoError(t, f.Close())

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err, "Failed to open test file")
	t.Cleanup(func() { _ = f2.Close() })
	return f2
}

func TestResolve(t *testing.T) {
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	f := newTestFile(t, func(f *excelize.File) {
		sheetName := "Sheet1"
		f.SetCellValue(sheetName, "A1", "Header1")
		f.SetCellValue(sheetName, "A2", 100)
		f.SetCellValue(sheetName, "A3", 200.5)
		f.SetCellValue(sheetName, "A4", true)
		f.SetCellValue(sheetName, "A5", day)

		custom := "dd.mm.yyyy"
		styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
		require.NoError(t, err)
		f.SetCellValue(sheetName, "A6", 45000)
		f.SetCellStyle(sheetName, "A6", "A6", styleID)

		money := "#,##0.00 \"EUR\""
		moneyID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &money})
		require.NoError(t, err)
		f.SetCellValue(sheetName, "A7", 12.5)
		f.SetCellStyle(sheetName, "A7", "A7", moneyID)
	})
	r := NewResolver(f, language.English)

	tests := []struct {
		row  int
		want models.Value
	}{
		{0, models.TextValue("Header1")},
		{1, models.NumberValue(100)},
		{2, models.NumberValue(200.5)},
		{3, models.BoolValue(true)},
		{4, models.DateValue(day)},
		{5, models.DateValue(day)},
		{6, models.NumberValue(12.5)},
		{7, models.EmptyValue()},
	}

	for _, tt := range tests {
		got := r.Resolve(models.CellRef{Sheet: "Sheet1", Row: tt.row, Col: 0})
		assert.Equal(t, tt.want.Kind, got.Kind, "row %d kind", tt.row)
		switch tt.want.Kind {
		case models.KindDate:
			assert.True(t, tt.want.Time.Equal(got.Time), "row %d: got %v, expected %v", tt.row, got.Time, tt.want.Time)
		default:
			assert.Equal(t, tt.want.String(), got.String(), "row %d", tt.row)
		}
	}
}

func TestResolve_UnknownSheetIsEmpty(t *testing.T) {
	f := newTestFile(t, func(f *excelize.File) {})
	r := NewResolver(f, language.English)
	assert.True(t, r.Resolve(models.CellRef{Sheet: "Nope", Row: 0, Col: 0}).IsEmpty())
}

func TestReadAs(t *testing.T) {
	r := &Resolver{locale: language.English, dateStyles: map[int]bool{}}
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   models.Value
		kind ReaderKind
		want models.Value
	}{
		{"auto keeps value", models.NumberValue(3), ReadAuto, models.NumberValue(3)},
		{"number as text", models.NumberValue(12345), ReadText, models.TextValue("12345")},
		{"currency text as number", models.TextValue("$1,234.50"), ReadNumber, models.NumberValue(1234.5)},
		{"accounting negative", models.TextValue("(10)"), ReadNumber, models.NumberValue(-10)},
		{"bool as number", models.BoolValue(true), ReadNumber, models.NumberValue(1)},
		{"serial as date", models.NumberValue(45000), ReadDate, models.DateValue(day)},
		{"text as date", models.TextValue("2023-03-15"), ReadDate, models.DateValue(day)},
		{"yes as bool", models.TextValue("Yes"), ReadBool, models.BoolValue(true)},
		{"zero as bool", models.NumberValue(0), ReadBool, models.BoolValue(false)},
		{"malformed number degrades to text", models.TextValue("n/a"), ReadNumber, models.TextValue("n/a")},
		{"malformed date degrades to text", models.TextValue("soon"), ReadDate, models.TextValue("soon")},
		{"empty stays empty", models.EmptyValue(), ReadNumber, models.EmptyValue()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ReadAs(tt.in, tt.kind)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value    models.Value
		tag      language.Tag
		expected string
	}{
		{models.NumberValue(1234.5), language.English, "1,234.5"},
		{models.NumberValue(1234.5), language.German, "1.234,5"},
		{models.NumberValue(-3), language.English, "-3"},
		{models.TextValue("abc"), language.German, "abc"},
		{models.BoolValue(false), language.English, "false"},
		{models.DateValue(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)), language.German, "2024-02-29"},
		{models.EmptyValue(), language.English, ""},
	}

	for _, tt := range tests {
		result := FormatValue(tt.value, tt.tag)
		if result != tt.expected {
			t.Errorf("FormatValue(%v, %s) = %q, expected %q", tt.value.String(), tt.tag, result, tt.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"123", 123, true},
		{"123.45", 123.45, true},
		{"-100", -100, true},
		{"hello", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		result, ok := parseNumber(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("parseNumber(%q) = %v, %v, expected %v, %v",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestResolverText(t *testing.T) {
	f := newTestFile(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", 1234.5)
		f.SetCellValue("Sheet1", "B1", "label")
	})
	r := NewResolver(f, language.German)
	assert.Equal(t, language.German, r.Locale())
	assert.Equal(t, "1.234,5", r.Text(models.CellRef{Sheet: "Sheet1", Row: 0, Col: 0}))
	assert.Equal(t, "label", r.Text(models.CellRef{Sheet: "Sheet1", Row: 0, Col: 1}))
	assert.Equal(t, "", r.Text(models.CellRef{Sheet: "Sheet1", Row: 5, Col: 5}))
}
