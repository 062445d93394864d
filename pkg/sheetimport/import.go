package sheetimport

import (
	"context"

	"github.com/google/uuid"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/workbook"
	"golang.org/x/sync/errgroup"
)

// Mapping describes how the rows of a sheet become records of type T.
type Mapping[T any] struct {
	// Schema is the accessor table of T.
	Schema *importer.Schema[T]
	// Columns maps sheet columns onto schema fields.
	Columns parser.Columns
	// DiffFields are the fields compared against prior records.
	DiffFields []string
	// ElementOptions are applied to every element.
	ElementOptions []importer.ElementOption[T]
	// New allocates an empty record. If nil, new(T) is used.
	New func() *T
}

func (m Mapping[T]) newRecord() *T {
	if m.New != nil {
		return m.New()
	}
	return new(T)
}

// Import reads the data rows of sheet below its header row and binds each
// non-blank row into a new element. Cells that cannot be bound are recorded
// as BindingFailed faults on their element. Missing required columns,
// unknown target fields and unreadable sheets fail the whole import.
func Import[T any](ctx context.Context, sheet *workbook.Sheet, m Mapping[T], opts Options) (*Batch[T], error) {
	name := sheet.Name()
	rows, err := sheet.Rows()
	if err != nil {
		return nil, NewImportError(name, -1, err)
	}

	headerRow := opts.HeaderRow
	if headerRow == AutoHeaderRow {
		bounds, ok := parser.DetectTable(rows, opts.Table)
		if !ok {
			return nil, NewImportError(name, -1, ErrNoHeader)
		}
		headerRow = bounds.HeaderRow()
	}

	header, err := sheet.HeaderIndex(headerRow)
	if err != nil {
		return nil, NewImportError(name, headerRow, err)
	}
	cols, err := m.Columns.Resolve(header)
	if err != nil {
		return nil, NewImportError(name, headerRow, err)
	}
	if err := importer.CheckColumns(m.Schema, cols); err != nil {
		return nil, NewImportError(name, -1, err)
	}

	var dataRows []int
	for r := headerRow + 1; r < len(rows); r++ {
		if !parser.IsBlankRow(rows[r]) {
			dataRows = append(dataRows, r)
		}
	}

	b := &Batch[T]{
		ID:        uuid.New().String(),
		Sheet:     name,
		HeaderRow: headerRow,
		Columns:   cols,
		schema:    m.Schema,
		workers:   opts.workers(),
		elements:  make([]*importer.Element[T], len(dataRows)),
		rows:      dataRows,
	}

	doc := sheet.Document()
	g, ctx := errgroup.WithContext(ctx)
	for _, part := range partition(len(dataRows), b.workers) {
		part := part
		g.Go(func() error {
			// Resolvers cache style lookups and are not shared.
			res := parser.NewResolver(doc.File(), doc.Locale())
			for i := part.lo; i < part.hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				rec := m.newRecord()
				bindErr := importer.Bind(rec, m.Schema, res, parser.Row{Sheet: name, Index: dataRows[i]}, cols)
				faults, err := importer.BindingFaults(bindErr)
				if err != nil {
					return NewImportError(name, dataRows[i], err)
				}
				el := importer.NewElement(i, m.Schema, m.DiffFields, m.ElementOptions...)
				el.SetValue(rec)
				for _, f := range faults {
					el.PutFault(f)
				}
				b.elements[i] = el
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.logger().Debug("imported sheet",
		"sheet", name,
		"batch", b.ID,
		"header_row", headerRow,
		"elements", len(b.elements),
		"faulty", b.Summary().Faulty)
	return b, nil
}

type span struct{ lo, hi int }

// partition splits n items into at most parts contiguous spans.
func partition(n, parts int) []span {
	if n == 0 {
		return nil
	}
	if parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	var out []span
	for lo := 0; lo < n; lo += size {
		out = append(out, span{lo: lo, hi: min(lo+size, n)})
	}
	return out
}
