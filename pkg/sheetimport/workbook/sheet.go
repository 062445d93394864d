package workbook

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is a handle on one named sheet of a Document. Handles are addressed by
// name: their position is refreshed whenever the sheet list is rebuilt, and a
// handle whose sheet was removed reports ErrSheetRemoved.
type Sheet struct {
	doc  *Document
	name string

	// Guarded by doc.sheets.mu.
	index    int
	modified bool
	removed  bool
}

// Name returns the sheet display name.
func (s *Sheet) Name() string { return s.name }

// Document returns the owning document.
func (s *Sheet) Document() *Document { return s.doc }

// Index returns the current zero-based position of the sheet.
func (s *Sheet) Index() (int, error) {
	s.doc.sheets.mu.Lock()
	defer s.doc.sheets.mu.Unlock()
	s.doc.sheets.ensureBuilt(s.doc)
	if s.removed {
		return -1, fmt.Errorf("%w: %q", ErrSheetRemoved, s.name)
	}
	return s.index, nil
}

// IsModified reports whether the sheet has unsaved changes.
func (s *Sheet) IsModified() bool {
	s.doc.sheets.mu.Lock()
	defer s.doc.sheets.mu.Unlock()
	return s.modified
}

// SetModified marks or clears the unsaved-changes flag.
func (s *Sheet) SetModified(modified bool) {
	s.doc.sheets.mu.Lock()
	defer s.doc.sheets.mu.Unlock()
	s.modified = modified
}

// Info returns a summary of the sheet.
func (s *Sheet) Info() models.SheetInfo {
	s.doc.sheets.mu.Lock()
	defer s.doc.sheets.mu.Unlock()
	return models.SheetInfo{Name: s.name, Index: s.index, Modified: s.modified}
}

// Cell returns a reference to the cell at the zero-based row and column.
func (s *Sheet) Cell(row, col int) models.CellRef {
	return models.CellRef{Sheet: s.name, Row: row, Col: col}
}

// Rows returns the formatted cell text of all rows.
func (s *Sheet) Rows() ([][]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.doc.file.GetRows(s.name)
}

// LastRow returns the number of rows holding data.
func (s *Sheet) LastRow() (int, error) {
	rows, err := s.Rows()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// HeaderIndex maps the lowercased, trimmed column titles of the given row to
// their zero-based column index. The first occurrence of a title wins.
func (s *Sheet) HeaderIndex(row int) (map[string]int, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int)
	if row < 0 || row >= len(rows) {
		return idx, nil
	}
	for col, title := range rows[row] {
		key := strings.ToLower(strings.TrimSpace(title))
		if key == "" {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = col
		}
	}
	return idx, nil
}

// SetCell writes value into the cell at the zero-based row and column and
// applies style if given. The sheet is marked modified.
func (s *Sheet) SetCell(row, col int, value any, style *Style) error {
	if err := s.check(); err != nil {
		return err
	}
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if err := s.doc.file.SetCellValue(s.name, axis, value); err != nil {
		return fmt.Errorf("set cell %s!%s: %w", s.name, axis, err)
	}
	if style != nil {
		id, err := style.ID()
		if err != nil {
			return err
		}
		if err := s.doc.file.SetCellStyle(s.name, axis, axis, id); err != nil {
			return fmt.Errorf("style cell %s!%s: %w", s.name, axis, err)
		}
	}
	s.SetModified(true)
	return nil
}

// SetColumnWidth sets the width of the zero-based column.
func (s *Sheet) SetColumnWidth(col int, width float64) error {
	if err := s.check(); err != nil {
		return err
	}
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}
	if err := s.doc.file.SetColWidth(s.name, name, name, width); err != nil {
		return err
	}
	s.SetModified(true)
	return nil
}

func (s *Sheet) check() error {
	s.doc.sheets.mu.Lock()
	defer s.doc.sheets.mu.Unlock()
	if s.removed {
		return fmt.Errorf("%w: %q", ErrSheetRemoved, s.name)
	}
	return nil
}
