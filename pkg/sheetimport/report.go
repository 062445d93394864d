package sheetimport

import (
	"strings"
	"time"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/workbook"
)

// DefaultReportSheet is the sheet written by WriteReport.
const DefaultReportSheet = "Changes"

// ReportOptions configures WriteReport.
type ReportOptions struct {
	// SheetName defaults to DefaultReportSheet.
	SheetName string
	// Generated is the report date; zero means now.
	Generated time.Time
}

var reportColumns = []struct {
	title string
	width float64
}{
	{"Row", 8},
	{"Status", 14},
	{"Field", 18},
	{"Old value", 28},
	{"New value", 28},
	{"Errors", 48},
}

const (
	colRow = iota
	colStatus
	colField
	colOld
	colNew
	colErrors
)

// WriteReport writes a change report of b into the document of wc: one line
// per property delta, or a single line for elements without deltas. Lines of
// faulty elements are highlighted and carry their fault messages. All cells
// share the cached styles of wc.
func WriteReport[T any](wc *workbook.WriterContext, b *Batch[T], opts ReportOptions) (*workbook.Sheet, error) {
	name := opts.SheetName
	if name == "" {
		name = DefaultReportSheet
	}
	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	sheet, err := wc.Document().CreateOrGetSheet(name)
	if err != nil {
		return nil, err
	}

	header := wc.HeaderStyle()
	if err := sheet.SetCell(0, 0, "Batch", header); err != nil {
		return nil, err
	}
	if err := sheet.SetCell(0, 1, b.ID, nil); err != nil {
		return nil, err
	}
	if err := sheet.SetCell(1, 0, "Sheet", header); err != nil {
		return nil, err
	}
	if err := sheet.SetCell(1, 1, b.Sheet, nil); err != nil {
		return nil, err
	}
	if err := sheet.SetCell(2, 0, "Generated", header); err != nil {
		return nil, err
	}
	if err := sheet.SetCell(2, 1, generated, wc.DateStyle()); err != nil {
		return nil, err
	}

	const first = 4
	for col, c := range reportColumns {
		if err := sheet.SetCell(first, col, c.title, header); err != nil {
			return nil, err
		}
		if err := sheet.SetColumnWidth(col, c.width); err != nil {
			return nil, err
		}
	}

	line := first + 1
	for i, el := range b.elements {
		status := Status(el)
		var messages []string
		for _, f := range el.Faults() {
			messages = append(messages, f.Message())
		}
		deltas, _, err := el.PropertyDeltas()
		if err != nil {
			messages = append(messages, err.Error())
		}
		errText := strings.Join(messages, "\n")

		if len(deltas) == 0 {
			if err := writeReportLine(wc, sheet, line, b.rows[i]+1, status, "", "", "", errText); err != nil {
				return nil, err
			}
			line++
			continue
		}
		for _, d := range deltas {
			if err := writeReportLine(wc, sheet, line, b.rows[i]+1, status, d.Field, d.OldValue, d.NewValue, errText); err != nil {
				return nil, err
			}
			line++
		}
	}
	return sheet, nil
}

func writeReportLine(wc *workbook.WriterContext, sheet *workbook.Sheet, line, row int, status, field, oldValue, newValue, errText string) error {
	var fill *workbook.Style
	if errText != "" && wc.HighlightErrorCells {
		fill = wc.ErrorHighlightStyle()
	}
	rowStyle := wc.IntegerStyle()
	if fill != nil {
		rowStyle = fill
	}
	cells := []struct {
		col   int
		value any
		style *workbook.Style
	}{
		{colRow, row, rowStyle},
		{colStatus, status, fill},
		{colField, field, fill},
		{colOld, oldValue, fill},
		{colNew, newValue, fill},
	}
	for _, c := range cells {
		if err := sheet.SetCell(line, c.col, c.value, c.style); err != nil {
			return err
		}
	}
	if errText != "" {
		return sheet.SetCell(line, colErrors, errText, wc.ErrorColumnStyle())
	}
	return nil
}
