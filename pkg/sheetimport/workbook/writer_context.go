package workbook

// Style tags used by WriterContext.
const (
	ErrorHighlightStyleTag = "error-highlight-cell-style"
	ErrorColumnStyleTag    = "error-column-cell-style"
	ErrorColumnFontID      = "error-column-cell-font"
	HeaderStyleTag         = "column-head-cell-style"
	HeaderFontID           = "column-head-cell-font"
)

// WriterContext holds the shared styles used while writing result sheets,
// such as highlighting of faulty cells and the error message column.
type WriterContext struct {
	doc *Document

	// DatePattern is the number format for date cells.
	DatePattern string
	// HighlightErrorCells fills cells of faulty rows.
	HighlightErrorCells bool
	// HighlightColor is the fill color for faulty cells.
	HighlightColor string
}

// NewWriterContext returns a context writing into doc with default settings.
func NewWriterContext(doc *Document) *WriterContext {
	return &WriterContext{
		doc:                 doc,
		DatePattern:         "yyyy-mm-dd",
		HighlightErrorCells: true,
		HighlightColor:      "FFFF00",
	}
}

// Document returns the target document.
func (c *WriterContext) Document() *Document { return c.doc }

// ErrorHighlightStyle returns the fill style for cells of faulty rows.
func (c *WriterContext) ErrorHighlightStyle() *Style {
	key := TagStyleKey(ErrorHighlightStyleTag)
	exist := c.doc.HasStyle(key)
	s := c.doc.CreateOrGetStyle(key)
	if !exist {
		s.SetFill(c.HighlightColor)
	}
	return s
}

// ErrorColumnStyle returns the style for error message cells: red Arial, wrapped.
func (c *WriterContext) ErrorColumnStyle() *Style {
	key := TagStyleKey(ErrorColumnStyleTag)
	exist := c.doc.HasStyle(key)
	s := c.doc.CreateOrGetStyle(key)
	if !exist {
		font := c.doc.CreateOrGetFont(ErrorColumnFontID)
		font.SetFamily("Arial").SetColor("FF0000")
		s.SetFont(font).SetWrapText(true)
	}
	return s
}

// HeaderStyle returns the bold style for column head cells.
func (c *WriterContext) HeaderStyle() *Style {
	key := TagStyleKey(HeaderStyleTag)
	exist := c.doc.HasStyle(key)
	s := c.doc.CreateOrGetStyle(key)
	if !exist {
		s.SetFont(c.doc.CreateOrGetFont(HeaderFontID).SetBold(true))
	}
	return s
}

// DateStyle returns the shared style for date cells.
func (c *WriterContext) DateStyle() *Style {
	return c.doc.EnsureDateStyle(c.DatePattern)
}

// IntegerStyle returns the shared style for whole numbers.
func (c *WriterContext) IntegerStyle() *Style {
	s, _ := c.doc.EnsureNumericStyle(NumericInteger)
	return s
}
