// Package workbook wraps an excelize workbook with a lazily built sheet index
// and identifier-keyed style and font registries.
//
// Spreadsheet formats cap the number of distinct cell styles a document may
// hold. Writers that request formatting row by row must go through
// CreateOrGetStyle, EnsureNumericStyle or EnsureDateStyle so that equivalent
// requests share one style record.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
)

// NameLookup maps a logical name key to its localized variants.
type NameLookup interface {
	Translations(key string) []string
}

// Option configures a Document.
type Option func(*Document)

// WithLocale sets the locale used for rendering cell values as text.
func WithLocale(tag language.Tag) Option {
	return func(d *Document) { d.locale = tag }
}

// WithName sets the file name reported in errors and summaries.
func WithName(name string) Option {
	return func(d *Document) { d.name = filepath.Base(name) }
}

// WithLogger sets the logger used for suppressed release failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// Document is an open spreadsheet.
//
// The sheet list is safe for concurrent use. The style and font registries
// are not; documents that are written from several goroutines must serialize
// style requests themselves.
type Document struct {
	file   *excelize.File
	source io.Closer
	name   string
	locale language.Tag
	logger *slog.Logger
	closed bool

	sheets sheetList
	styles map[StyleKey]*Style
	fonts  map[string]*Font
}

func newDocument(f *excelize.File, opts []Option) *Document {
	d := &Document{
		file:   f,
		locale: language.English,
		styles: make(map[StyleKey]*Style),
		fonts:  make(map[string]*Font),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// New creates an empty in-memory document with one default sheet.
func New(opts ...Option) *Document {
	return newDocument(excelize.NewFile(), opts)
}

// Open reads a document from r. If r is an io.Closer it is released by Close.
func Open(r io.Reader, opts ...Option) (*Document, error) {
	d := newDocument(nil, opts)
	f, err := excelize.OpenReader(r)
	if err != nil {
		if c, ok := r.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, NewIOError("open", d.name, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	d.file = f
	if c, ok := r.(io.Closer); ok {
		d.source = c
	}
	return d, nil
}

// OpenFile opens the document stored at path.
func OpenFile(path string, opts ...Option) (*Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewIOError("open", path, ErrFileNotFound)
		}
		return nil, NewIOError("open", path, err)
	}
	opts = append([]Option{WithName(path)}, opts...)
	return Open(fh, opts...)
}

// OpenBytes reads a document from an in-memory byte slice.
func OpenBytes(b []byte, opts ...Option) (*Document, error) {
	return Open(bytes.NewReader(b), opts...)
}

// File returns the underlying excelize workbook.
func (d *Document) File() *excelize.File { return d.file }

// Name returns the document file name, if known.
func (d *Document) Name() string { return d.name }

// Locale returns the locale used to render values as text.
func (d *Document) Locale() language.Tag { return d.locale }

// Sheets returns the sheets in position order.
func (d *Document) Sheets() []*Sheet {
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	out := make([]*Sheet, len(d.sheets.sheets))
	copy(out, d.sheets.sheets)
	return out
}

// Sheet returns the sheet at the zero-based position idx.
func (d *Document) Sheet(idx int) (*Sheet, error) {
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	if idx < 0 || idx >= len(d.sheets.sheets) {
		return nil, fmt.Errorf("%w: %d (sheets: %d)", ErrSheetIndex, idx, len(d.sheets.sheets))
	}
	return d.sheets.sheets[idx], nil
}

// SheetByName returns the sheet with the given name. Names match ignoring
// case, as in the workbook format.
func (d *Document) SheetByName(name string) (*Sheet, bool) {
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	return d.sheets.find(name)
}

// SheetByAnyName returns the first sheet matching one of names, tried in
// order. Sheet titles are often localized ("Configuration", "Konfiguration").
func (d *Document) SheetByAnyName(names ...string) (*Sheet, bool) {
	for _, name := range names {
		if s, ok := d.SheetByName(name); ok {
			return s, true
		}
	}
	return nil, false
}

// SheetByLocalizedName resolves key through lookup and returns the first
// sheet matching one of its translations.
func (d *Document) SheetByLocalizedName(lookup NameLookup, key string) (*Sheet, bool) {
	if lookup == nil {
		return nil, false
	}
	return d.SheetByAnyName(lookup.Translations(key)...)
}

// CreateOrGetSheet returns the sheet named name, creating it if necessary.
// A created sheet is marked modified.
func (d *Document) CreateOrGetSheet(name string) (*Sheet, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrSheetName)
	}
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	if s, ok := d.sheets.find(name); ok {
		return s, nil
	}
	if _, err := d.file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSheetName, name, err)
	}
	d.sheets.invalidate()
	d.sheets.ensureBuilt(d)
	s, ok := d.sheets.find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q was not created", ErrSheetName, name)
	}
	s.modified = true
	return s, nil
}

// CloneSheet copies the sheet at position src to a new sheet appended at the
// end of the workbook.
func (d *Document) CloneSheet(src int, name string) (*Sheet, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrSheetName)
	}
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	if src < 0 || src >= len(d.sheets.sheets) {
		return nil, fmt.Errorf("%w: %d (sheets: %d)", ErrSheetIndex, src, len(d.sheets.sheets))
	}
	if existing, exists := d.sheets.find(name); exists {
		return nil, fmt.Errorf("%w: %q already exists as %q", ErrSheetName, name, existing.name)
	}
	from, err := d.file.GetSheetIndex(d.sheets.sheets[src].name)
	if err != nil {
		return nil, fmt.Errorf("clone sheet %d: %w", src, err)
	}
	to, err := d.file.NewSheet(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSheetName, name, err)
	}
	// The new sheet exists from here on, even if copying fails.
	d.sheets.invalidate()
	if err := d.file.CopySheet(from, to); err != nil {
		return nil, fmt.Errorf("clone sheet %d: %w", src, err)
	}
	d.sheets.ensureBuilt(d)
	s, ok := d.sheets.find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q was not created", ErrSheetName, name)
	}
	s.modified = true
	return s, nil
}

// RemoveSheetAt deletes the sheet at position idx. The removed sheet's handle
// becomes stale; handles of the remaining sheets are re-indexed.
func (d *Document) RemoveSheetAt(idx int) error {
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	if idx < 0 || idx >= len(d.sheets.sheets) {
		return fmt.Errorf("%w: %d (sheets: %d)", ErrSheetIndex, idx, len(d.sheets.sheets))
	}
	if len(d.sheets.sheets) == 1 {
		return fmt.Errorf("%w: cannot remove the only sheet", ErrSheetIndex)
	}
	if err := d.file.DeleteSheet(d.sheets.sheets[idx].name); err != nil {
		return fmt.Errorf("remove sheet %d: %w", idx, err)
	}
	d.sheets.invalidate()
	d.sheets.ensureBuilt(d)
	d.sheets.removedSince = true
	return nil
}

// NumberOfSheets returns the live sheet count of the workbook.
func (d *Document) NumberOfSheets() int {
	return len(d.file.GetSheetList())
}

// SetActiveSheet selects the sheet shown when the workbook is opened.
func (d *Document) SetActiveSheet(idx int) error {
	if _, err := d.Sheet(idx); err != nil {
		return err
	}
	d.file.SetActiveSheet(idx)
	return nil
}

// IsModified reports whether any sheet has unsaved changes.
func (d *Document) IsModified() bool {
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	for _, s := range d.sheets.sheets {
		if s.modified {
			return true
		}
	}
	return d.sheets.removedSince
}

// Info returns a summary of the document's sheets.
func (d *Document) Info() models.WorkbookInfo {
	sheets := d.Sheets()
	info := models.WorkbookInfo{
		BookName: d.name,
		Sheets:   make([]models.SheetInfo, 0, len(sheets)),
	}
	for _, s := range sheets {
		info.Sheets = append(info.Sheets, s.Info())
	}
	return info
}

// Write serializes the document to w.
func (d *Document) Write(w io.Writer) error {
	if err := d.file.Write(w); err != nil {
		return NewIOError("write", d.name, err)
	}
	d.markSaved()
	return nil
}

// Bytes serializes the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	buf, err := d.file.WriteToBuffer()
	if err != nil {
		return nil, NewIOError("write", d.name, err)
	}
	d.markSaved()
	return buf.Bytes(), nil
}

// SaveAs writes the document to path.
func (d *Document) SaveAs(path string) error {
	if err := d.file.SaveAs(path); err != nil {
		return NewIOError("save", path, err)
	}
	d.markSaved()
	return nil
}

// Close releases the source stream and the workbook. Release failures are
// logged and suppressed, so Close always returns nil.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.source != nil {
		if err := d.source.Close(); err != nil {
			d.logger.Debug("closing workbook source failed", "name", d.name, "error", err)
		}
	}
	if err := d.file.Close(); err != nil {
		d.logger.Debug("closing workbook failed", "name", d.name, "error", err)
	}
	return nil
}

func (d *Document) markSaved() {
	d.sheets.mu.Lock()
	defer d.sheets.mu.Unlock()
	d.sheets.ensureBuilt(d)
	for _, s := range d.sheets.sheets {
		s.modified = false
	}
	d.sheets.removedSince = false
}
