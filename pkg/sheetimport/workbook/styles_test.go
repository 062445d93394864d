package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrGetStyle(t *testing.T) {
	doc := New()
	defer doc.Close()

	keys := []StyleKey{
		TagStyleKey("header"),
		NumericStyleKey(NumericInteger),
		DateStyleKey("dd.mm.yyyy"),
	}
	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			assert.False(t, doc.HasStyle(key))
			first := doc.CreateOrGetStyle(key)
			assert.True(t, doc.HasStyle(key))
			assert.Same(t, first, doc.CreateOrGetStyle(key))
		})
	}
}

func TestCreateOrGetStyle_ZeroKeyIsUncached(t *testing.T) {
	doc := New()
	defer doc.Close()

	a := doc.CreateOrGetStyle(StyleKey{})
	b := doc.CreateOrGetStyle(StyleKey{})
	assert.NotSame(t, a, b)
	assert.NotSame(t, doc.NewStyle(), doc.NewStyle())
	assert.False(t, doc.HasStyle(StyleKey{}))
}

func TestStyleKeysDoNotCollide(t *testing.T) {
	doc := New()
	defer doc.Close()

	// Same discriminator text under different kinds.
	tag := doc.CreateOrGetStyle(TagStyleKey("integer"))
	num := doc.CreateOrGetStyle(NumericStyleKey(NumericInteger))
	assert.NotSame(t, tag, num)
}

func TestEnsureNumericStyle(t *testing.T) {
	doc := New()
	defer doc.Close()

	intStyle, err := doc.EnsureNumericStyle(NumericInteger)
	require.NoError(t, err)
	assert.Equal(t, integerNumFmt, intStyle.NumFmt())

	again, err := doc.EnsureNumericStyle(NumericInteger)
	require.NoError(t, err)
	assert.Same(t, intStyle, again)

	floatStyle, err := doc.EnsureNumericStyle(NumericFloat)
	require.NoError(t, err)
	assert.Equal(t, floatNumFmt, floatStyle.CustomNumFmt())
	assert.NotSame(t, intStyle, floatStyle)

	// A later change by the caller is kept on subsequent calls.
	floatStyle.SetCustomNumFmt("0.000")
	floatAgain, err := doc.EnsureNumericStyle(NumericFloat)
	require.NoError(t, err)
	assert.Equal(t, "0.000", floatAgain.CustomNumFmt())

	_, err = doc.EnsureNumericStyle(NumericDate)
	assert.ErrorIs(t, err, ErrDateStyleNeedsPattern)
}

func TestEnsureDateStyle(t *testing.T) {
	doc := New()
	defer doc.Close()

	iso := doc.EnsureDateStyle("yyyy-mm-dd")
	assert.Same(t, iso, doc.EnsureDateStyle("yyyy-mm-dd"))
	assert.Equal(t, "yyyy-mm-dd", iso.CustomNumFmt())

	german := doc.EnsureDateStyle("dd.mm.yyyy")
	assert.NotSame(t, iso, german)
}

func TestCreateOrGetFont(t *testing.T) {
	doc := New()
	defer doc.Close()

	f := doc.CreateOrGetFont("bold")
	f.SetBold(true)
	assert.Same(t, f, doc.CreateOrGetFont("bold"))
	assert.True(t, doc.CreateOrGetFont("bold").Bold())
	assert.NotSame(t, f, doc.CreateOrGetFont("other"))
}

func TestStyleID(t *testing.T) {
	doc := New()
	defer doc.Close()

	s := doc.EnsureDateStyle("yyyy-mm-dd")
	id, err := s.ID()
	require.NoError(t, err)
	again, err := s.ID()
	require.NoError(t, err)
	assert.Equal(t, id, again, "unchanged styles are registered once")

	sheet, err := doc.Sheet(0)
	require.NoError(t, err)
	require.NoError(t, sheet.SetCell(0, 0, 45000, s))

	got, err := doc.File().GetCellStyle(sheet.Name(), "A1")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestWriterContextStylesAreShared(t *testing.T) {
	doc := New()
	defer doc.Close()
	wc := NewWriterContext(doc)

	assert.Same(t, wc.ErrorHighlightStyle(), wc.ErrorHighlightStyle())
	assert.Same(t, wc.ErrorColumnStyle(), wc.ErrorColumnStyle())
	assert.Same(t, wc.HeaderStyle(), wc.HeaderStyle())
	assert.Same(t, wc.DateStyle(), doc.EnsureDateStyle(wc.DatePattern))

	font := wc.ErrorColumnStyle().Font()
	require.NotNil(t, font)
	assert.Equal(t, "Arial", font.Family())
	assert.Equal(t, "FF0000", font.Color())
	assert.Same(t, font, doc.CreateOrGetFont(ErrorColumnFontID))
}
