package sheetimport

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/workbook"
)

func TestWriteReport(t *testing.T) {
	b := importProducts(t, [][]any{
		{"A-1", "Widget", 2, 5},
		{"A-2", "Broken", 1, "x"},
		{"A-3", "Fresh", 1, 1},
	})
	require.NoError(t, b.Reconcile(context.Background(), mapLookup{
		"A-1": {SKU: "A-1", Name: pgtype.Text{String: "Gizmo", Valid: true}, Price: decimal("1"), Stock: pgtype.Int8{Int64: 5, Valid: true}},
	}, "sku"))

	doc := workbook.New()
	defer doc.Close()
	wc := workbook.NewWriterContext(doc)

	generated := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sheet, err := WriteReport(wc, b, ReportOptions{Generated: generated})
	require.NoError(t, err)
	assert.Equal(t, DefaultReportSheet, sheet.Name())
	assert.True(t, sheet.IsModified())

	rows, err := sheet.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, b.ID, rows[0][1])
	assert.Equal(t, []string{"Row", "Status", "Field", "Old value", "New value", "Errors"}, rows[4])

	// Two deltas of the modified element, one line each for the others.
	assert.Equal(t, []string{"4", "modified", "name", "Gizmo", "Widget"}, rows[5])
	assert.Equal(t, []string{"4", "modified", "price", "1", "2"}, rows[6])
	assert.Equal(t, "faulty", rows[7][1])
	assert.Contains(t, rows[7][5], "stock")
	assert.Equal(t, []string{"6", "new"}, rows[8][:2])

	f := doc.File()
	highlight, err := wc.ErrorHighlightStyle().ID()
	require.NoError(t, err)
	got, err := f.GetCellStyle(sheet.Name(), "B8")
	require.NoError(t, err)
	assert.Equal(t, highlight, got, "faulty lines are highlighted")

	errCol, err := wc.ErrorColumnStyle().ID()
	require.NoError(t, err)
	got, err = f.GetCellStyle(sheet.Name(), "F8")
	require.NoError(t, err)
	assert.Equal(t, errCol, got)

	dateStyle, err := wc.DateStyle().ID()
	require.NoError(t, err)
	got, err = f.GetCellStyle(sheet.Name(), "B3")
	require.NoError(t, err)
	assert.Equal(t, dateStyle, got)
	date, err := f.GetCellValue(sheet.Name(), "B3")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", date)
}

func TestWriteReport_ReusesStyles(t *testing.T) {
	doc := workbook.New()
	defer doc.Close()
	wc := workbook.NewWriterContext(doc)

	b := importProducts(t, [][]any{{"A-1", "x", 1, "bad"}})
	b.Element(0).SetReconciled(true)

	_, err := WriteReport(wc, b, ReportOptions{SheetName: "First"})
	require.NoError(t, err)
	before := len(doc.File().Styles.CellXfs.Xf)

	_, err = WriteReport(wc, b, ReportOptions{SheetName: "Second"})
	require.NoError(t, err)
	assert.Equal(t, before, len(doc.File().Styles.CellXfs.Xf), "no styles are added for repeated reports")
}

func TestWriteReport_DeltaErrorInErrorColumn(t *testing.T) {
	m := productMapping()
	m.DiffFields = []string{"name", "weight"}
	opts := DefaultOptions()
	opts.HeaderRow = 2
	b, err := Import(context.Background(), newProductSheet(t, [][]any{{"A-1", "Widget", 2, 5}}), m, opts)
	require.NoError(t, err)
	require.NoError(t, b.Reconcile(context.Background(), mapLookup{"A-1": {SKU: "A-1"}}, "sku"))

	doc := workbook.New()
	defer doc.Close()
	sheet, err := WriteReport(workbook.NewWriterContext(doc), b, ReportOptions{})
	require.NoError(t, err)

	rows, err := sheet.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "error", rows[5][1])
	require.Len(t, rows[5], 6)
	assert.Equal(t, `no accessor for field "weight"`, rows[5][5])
}
