package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// NumericKind selects a standard number display format.
type NumericKind int

const (
	// NumericInteger displays whole numbers ("0").
	NumericInteger NumericKind = iota
	// NumericFloat displays decimals ("#.#").
	NumericFloat
	// NumericDate is rejected by EnsureNumericStyle; use EnsureDateStyle.
	NumericDate
)

func (k NumericKind) String() string {
	switch k {
	case NumericInteger:
		return "integer"
	case NumericFloat:
		return "float"
	case NumericDate:
		return "date"
	default:
		return fmt.Sprintf("numeric(%d)", int(k))
	}
}

// Builtin and custom number formats applied by EnsureNumericStyle.
const (
	integerNumFmt = 1 // "0"
	floatNumFmt   = "#.#"
)

type styleKeyKind int

const (
	styleKeyNone styleKeyKind = iota
	styleKeyNumeric
	styleKeyDate
	styleKeyTag
)

// StyleKey identifies a cached style. Keys of different kinds never collide,
// even when their discriminators are equal strings. The zero key identifies
// nothing: CreateOrGetStyle(StyleKey{}) allocates an uncached style.
type StyleKey struct {
	kind  styleKeyKind
	value string
}

// NumericStyleKey returns the key of a standard numeric format style.
func NumericStyleKey(kind NumericKind) StyleKey {
	return StyleKey{kind: styleKeyNumeric, value: kind.String()}
}

// DateStyleKey returns the key of the date style for pattern.
func DateStyleKey(pattern string) StyleKey {
	return StyleKey{kind: styleKeyDate, value: pattern}
}

// TagStyleKey returns the key of a caller-defined style.
func TagStyleKey(tag string) StyleKey {
	return StyleKey{kind: styleKeyTag, value: tag}
}

// IsZero reports whether k identifies no cached style.
func (k StyleKey) IsZero() bool { return k.kind == styleKeyNone }

func (k StyleKey) String() string {
	switch k.kind {
	case styleKeyNumeric:
		return "DataFormat." + k.value
	case styleKeyDate:
		return "DataFormat.date." + k.value
	case styleKeyTag:
		return k.value
	default:
		return ""
	}
}

// Style is a mutable cell style definition. It is registered with the
// workbook on first use and re-registered after it changes.
type Style struct {
	doc *Document
	def excelize.Style

	font        *Font
	fontVersion int
	id          int
	dirty       bool
}

// SetNumFmt sets a builtin number format id.
func (s *Style) SetNumFmt(id int) *Style {
	s.def.NumFmt = id
	s.def.CustomNumFmt = nil
	s.dirty = true
	return s
}

// SetCustomNumFmt sets a custom number format code such as "yyyy-mm-dd".
func (s *Style) SetCustomNumFmt(format string) *Style {
	s.def.NumFmt = 0
	s.def.CustomNumFmt = &format
	s.dirty = true
	return s
}

// NumFmt returns the builtin number format id.
func (s *Style) NumFmt() int { return s.def.NumFmt }

// CustomNumFmt returns the custom number format code, if any.
func (s *Style) CustomNumFmt() string {
	if s.def.CustomNumFmt == nil {
		return ""
	}
	return *s.def.CustomNumFmt
}

// SetFill sets a solid pattern fill with the given hex color ("FFFF00").
func (s *Style) SetFill(color string) *Style {
	s.def.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	s.dirty = true
	return s
}

// SetWrapText enables or disables text wrapping.
func (s *Style) SetWrapText(wrap bool) *Style {
	if s.def.Alignment == nil {
		s.def.Alignment = &excelize.Alignment{}
	}
	s.def.Alignment.WrapText = wrap
	s.dirty = true
	return s
}

// SetFont attaches a font. Later changes to the font are picked up on the
// next ID call.
func (s *Style) SetFont(f *Font) *Style {
	s.font = f
	s.dirty = true
	return s
}

// Font returns the attached font, if any.
func (s *Style) Font() *Font { return s.font }

// ID registers the style with the workbook if needed and returns its id.
func (s *Style) ID() (int, error) {
	if !s.dirty && (s.font == nil || s.font.version == s.fontVersion) {
		return s.id, nil
	}
	def := s.def
	if s.font != nil {
		fd := s.font.def
		def.Font = &fd
		s.fontVersion = s.font.version
	}
	id, err := s.doc.file.NewStyle(&def)
	if err != nil {
		return 0, fmt.Errorf("register style: %w", err)
	}
	s.id = id
	s.dirty = false
	return id, nil
}

// Font is a mutable font definition shared by styles.
type Font struct {
	def     excelize.Font
	version int
}

// SetFamily sets the font family ("Arial").
func (f *Font) SetFamily(family string) *Font { f.def.Family = family; f.version++; return f }

// SetColor sets the font color as hex ("FF0000").
func (f *Font) SetColor(color string) *Font { f.def.Color = color; f.version++; return f }

// SetBold toggles bold text.
func (f *Font) SetBold(bold bool) *Font { f.def.Bold = bold; f.version++; return f }

// SetItalic toggles italic text.
func (f *Font) SetItalic(italic bool) *Font { f.def.Italic = italic; f.version++; return f }

// SetSize sets the point size.
func (f *Font) SetSize(size float64) *Font { f.def.Size = size; f.version++; return f }

// Family returns the font family.
func (f *Font) Family() string { return f.def.Family }

// Color returns the font color.
func (f *Font) Color() string { return f.def.Color }

// Bold reports whether the font is bold.
func (f *Font) Bold() bool { return f.def.Bold }

// NewStyle allocates a style that is not cached, for one-off formatting.
func (d *Document) NewStyle() *Style {
	return &Style{doc: d, dirty: true}
}

// HasStyle reports whether a style is cached under key.
func (d *Document) HasStyle(key StyleKey) bool {
	_, ok := d.styles[key]
	return ok
}

// CreateOrGetStyle returns the style cached under key, allocating and caching
// it on first request. The zero key always allocates a fresh, uncached style.
func (d *Document) CreateOrGetStyle(key StyleKey) *Style {
	if key.IsZero() {
		return d.NewStyle()
	}
	if s, ok := d.styles[key]; ok {
		return s
	}
	s := d.NewStyle()
	d.styles[key] = s
	return s
}

// CreateOrGetFont returns the font cached under id, allocating it on first
// request.
func (d *Document) CreateOrGetFont(id string) *Font {
	if f, ok := d.fonts[id]; ok {
		return f
	}
	f := &Font{}
	d.fonts[id] = f
	return f
}

// EnsureNumericStyle returns the shared style for a standard numeric format,
// setting its number format on first use.
func (d *Document) EnsureNumericStyle(kind NumericKind) (*Style, error) {
	switch kind {
	case NumericInteger, NumericFloat:
	case NumericDate:
		return nil, ErrDateStyleNeedsPattern
	default:
		return nil, fmt.Errorf("unknown numeric kind %d", int(kind))
	}
	key := NumericStyleKey(kind)
	exist := d.HasStyle(key)
	s := d.CreateOrGetStyle(key)
	if !exist {
		if kind == NumericInteger {
			s.SetNumFmt(integerNumFmt)
		} else {
			s.SetCustomNumFmt(floatNumFmt)
		}
	}
	return s, nil
}

// EnsureDateStyle returns the shared style for the date pattern, setting its
// number format on first use.
func (d *Document) EnsureDateStyle(pattern string) *Style {
	key := DateStyleKey(pattern)
	exist := d.HasStyle(key)
	s := d.CreateOrGetStyle(key)
	if !exist {
		s.SetCustomNumFmt(pattern)
	}
	return s
}
