package parser

import (
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxFractionDigits bounds the decimals shown for numbers.
const maxFractionDigits = 10

// FormatValue renders v for display. Numbers follow the decimal and grouping
// separators of tag; dates use ISO notation.
func FormatValue(v models.Value, tag language.Tag) string {
	if v.Kind != models.KindNumber {
		return v.String()
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", number.Decimal(v.Number, number.MaxFractionDigits(maxFractionDigits)))
}
