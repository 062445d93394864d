package main

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/ukaji3/sheetimport-go/internal/config"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/workbook"
)

// plan is the record layout derived from the configuration and, when no
// columns are configured, from the header of the imported sheet.
type plan struct {
	sheet   string
	fields  []importer.RecordField
	mapping sheetimport.Mapping[importer.Record]
}

func newPlan(cfg *config.Config, sheet *workbook.Sheet) (*plan, error) {
	var (
		fields []importer.RecordField
		cols   parser.Columns
		err    error
	)
	if len(cfg.Columns) > 0 {
		fields, cols, err = configuredColumns(cfg)
	} else {
		fields, cols, err = headerColumns(cfg, sheet)
	}
	if err != nil {
		return nil, err
	}

	schema, err := importer.RecordSchema(fields...)
	if err != nil {
		return nil, err
	}
	if _, err := schema.Lookup(cfg.Key); err != nil {
		return nil, fmt.Errorf("key field: %w", err)
	}

	diff := cfg.Diff
	if len(diff) == 0 {
		for _, f := range fields {
			if f.Name != cfg.Key {
				diff = append(diff, f.Name)
			}
		}
	}
	for _, name := range diff {
		if _, err := schema.Lookup(name); err != nil {
			return nil, fmt.Errorf("diff field: %w", err)
		}
	}

	return &plan{
		sheet:  sheet.Name(),
		fields: fields,
		mapping: sheetimport.Mapping[importer.Record]{
			Schema:     schema,
			Columns:    cols,
			DiffFields: diff,
			New:        importer.NewRecord,
		},
	}, nil
}

func (p *plan) options(cfg *config.Config, logger *slog.Logger) sheetimport.Options {
	opts := sheetimport.DefaultOptions()
	opts.HeaderRow = cfg.HeaderRowIndex()
	opts.Workers = cfg.Workers
	opts.Logger = logger
	return opts
}

func configuredColumns(cfg *config.Config) ([]importer.RecordField, parser.Columns, error) {
	var (
		fields []importer.RecordField
		cols   parser.Columns
		seen   = make(map[string]bool)
	)
	for _, cc := range cfg.Columns {
		kind, err := importer.ParseKind(cc.Kind)
		if err != nil {
			return nil, nil, err
		}
		reader, err := parser.ParseReaderKind(cc.Reader)
		if err != nil {
			return nil, nil, err
		}
		name := cc.FieldName()
		var col parser.ColumnDef
		if cc.Header != "" {
			col = parser.Column(cc.Header, name)
		} else {
			col = parser.ColumnAt(cc.Index-1, name)
		}
		col = col.As(reader)
		if cc.Required || name == cfg.Key {
			col = col.MustExist()
		}
		cols = append(cols, col)
		if !seen[name] {
			seen[name] = true
			fields = append(fields, importer.RecordField{Name: name, Kind: kind})
		}
	}
	return fields, cols, nil
}

// headerColumns turns every header title into a field. Fields listed under
// decimal or date are typed accordingly; all others are text.
func headerColumns(cfg *config.Config, sheet *workbook.Sheet) ([]importer.RecordField, parser.Columns, error) {
	headerRow := cfg.HeaderRowIndex()
	if headerRow == sheetimport.AutoHeaderRow {
		rows, err := sheet.Rows()
		if err != nil {
			return nil, nil, err
		}
		bounds, ok := parser.DetectTable(rows, parser.DefaultTableParams())
		if !ok {
			return nil, nil, sheetimport.NewImportError(sheet.Name(), -1, sheetimport.ErrNoHeader)
		}
		headerRow = bounds.HeaderRow()
	}
	header, err := sheet.HeaderIndex(headerRow)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return header[names[i]] < header[names[j]] })

	var (
		fields []importer.RecordField
		cols   parser.Columns
	)
	for _, name := range names {
		field := importer.RecordField{Name: name, Kind: importer.KindText}
		col := parser.Column(name, name)
		switch {
		case slices.Contains(cfg.Decimal, name):
			field.Kind = importer.KindDecimal
			col = col.As(parser.ReadNumber)
		case slices.Contains(cfg.Date, name):
			field.Kind = importer.KindDate
			col = col.As(parser.ReadDate)
		}
		if name == cfg.Key {
			col = col.MustExist()
		}
		fields = append(fields, field)
		cols = append(cols, col)
	}
	return fields, cols, nil
}
