package i18n

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/workbook"
)

// TranslationsSheet is the sheet holding a dictionary in a workbook. Its
// first row names the "key" column and one column per language code.
const TranslationsSheet = "Translations"

const keyColumn = "key"

var (
	// ErrNoTranslationsSheet is returned when a workbook has no translations sheet.
	ErrNoTranslationsSheet = errors.New("no translations sheet")
	// ErrNoKeyColumn is returned when the translations sheet has no key column.
	ErrNoKeyColumn = errors.New("translations sheet has no key column")
)

// ImportWorkbook reads the translations sheet of doc into a new dictionary.
func ImportWorkbook(doc *workbook.Document, defaultLang string) (*Dictionary, error) {
	d := New(defaultLang)
	if err := d.ImportWorkbook(doc); err != nil {
		return nil, err
	}
	return d, nil
}

// ImportWorkbook adds the translations sheet of doc through AddTranslation.
// Header titles of up to three letters are language columns; other columns
// are ignored. Rows without key are skipped.
func (d *Dictionary) ImportWorkbook(doc *workbook.Document) error {
	sheet, ok := doc.SheetByName(TranslationsSheet)
	if !ok {
		return fmt.Errorf("%s: %w", doc.Name(), ErrNoTranslationsSheet)
	}
	header, err := sheet.HeaderIndex(0)
	if err != nil {
		return err
	}
	keyCol, ok := header[keyColumn]
	if !ok {
		return fmt.Errorf("%s: %w", doc.Name(), ErrNoKeyColumn)
	}

	langs := make(map[string]int)
	for title, col := range header {
		if col == keyCol {
			continue
		}
		if !isLangCode(title) {
			d.logger.Warn("ignoring column, not a language code", "column", title, "book", doc.Name())
			continue
		}
		langs[title] = col
	}

	rows, err := sheet.Rows()
	if err != nil {
		return err
	}
	for _, row := range rows[min(1, len(rows)):] {
		key := strings.TrimSpace(cellAt(row, keyCol))
		if key == "" {
			continue
		}
		for lang, col := range langs {
			d.AddTranslation(lang, key, cellAt(row, col))
		}
	}
	return nil
}

// WriteWorkbook writes the dictionary into the translations sheet of doc,
// creating the sheet if needed: a header row, then one row per key with a
// column per language in use.
func (d *Dictionary) WriteWorkbook(doc *workbook.Document) (*workbook.Sheet, error) {
	sheet, err := doc.CreateOrGetSheet(TranslationsSheet)
	if err != nil {
		return nil, err
	}
	headStyle := workbook.NewWriterContext(doc).HeaderStyle()
	langs := d.Langs()

	if err := sheet.SetCell(0, 0, keyColumn, headStyle); err != nil {
		return nil, err
	}
	for i, lang := range langs {
		if err := sheet.SetCell(0, i+1, lang, headStyle); err != nil {
			return nil, err
		}
	}
	for r, key := range d.Keys() {
		if err := sheet.SetCell(r+1, 0, key, nil); err != nil {
			return nil, err
		}
		for i, lang := range langs {
			t, _ := d.Translation(lang, key)
			if err := sheet.SetCell(r+1, i+1, t, nil); err != nil {
				return nil, err
			}
		}
	}
	return sheet, nil
}

func isLangCode(s string) bool {
	if s == "" || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
