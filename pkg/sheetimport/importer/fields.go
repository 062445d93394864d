package importer

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"github.com/xuri/excelize/v2"
)

// Kind is the declared type of a field. It selects coercion, comparison and
// rendering rules.
type Kind int

const (
	KindString Kind = iota
	KindText
	KindInt
	KindFloat
	KindDecimal
	KindBool
	KindDate
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a kind name from configuration to a Kind. Custom kinds
// cannot be configured.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return KindString, nil
	case "", "text":
		return KindText, nil
	case "int", "integer":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "decimal", "numeric":
		return KindDecimal, nil
	case "bool", "boolean":
		return KindBool, nil
	case "date":
		return KindDate, nil
	}
	return KindText, fmt.Errorf("unknown field kind %q", s)
}

var (
	errNotInteger = errors.New("not an integer")
	errNotNumber  = errors.New("not a number")
	errNotBool    = errors.New("not a boolean")
	errNotDate    = errors.New("not a date")
)

// codec bundles the per-kind rules for one field value type.
type codec[V any] struct {
	kind   Kind
	coerce func(models.Value) (V, error)
	equal  func(a, b V) bool
	format func(V) string
}

// Field is the accessor of one named record field.
type Field[T any] struct {
	name   string
	kind   Kind
	get    func(*T) any
	bind   func(*T, models.Value) error
	equal  func(a, b *T) bool
	format func(*T) string
}

// Name returns the field name.
func (f Field[T]) Name() string { return f.name }

// Kind returns the declared field kind.
func (f Field[T]) Kind() Kind { return f.kind }

// Value returns the field value of rec. A nil rec yields the zero value.
func (f Field[T]) Value(rec *T) any { return f.get(rec) }

// Bind coerces v and stores it in rec.
func (f Field[T]) Bind(rec *T, v models.Value) error { return f.bind(rec, v) }

// Equal compares the field of two records under the rules of its kind.
// Absent and present values are never equal.
func (f Field[T]) Equal(a, b *T) bool { return f.equal(a, b) }

// Format renders the field of rec as text; absent values render empty.
func (f Field[T]) Format(rec *T) string { return f.format(rec) }

func newField[T, V any](name string, c codec[V], get func(*T) V, set func(*T, V)) Field[T] {
	read := func(rec *T) V {
		if rec == nil {
			var zero V
			return zero
		}
		return get(rec)
	}
	return Field[T]{
		name: name,
		kind: c.kind,
		get:  func(rec *T) any { return read(rec) },
		bind: func(rec *T, v models.Value) error {
			out, err := c.coerce(v)
			if err != nil {
				return err
			}
			set(rec, out)
			return nil
		},
		equal:  func(a, b *T) bool { return c.equal(read(a), read(b)) },
		format: func(rec *T) string { return c.format(read(rec)) },
	}
}

func pointerField[T, V any](name string, c codec[V], ptr func(*T) *V) Field[T] {
	return newField(name, c,
		func(rec *T) V { return *ptr(rec) },
		func(rec *T, v V) { *ptr(rec) = v })
}

// StringField declares a plain string field. The empty string is a value,
// not an absence.
func StringField[T any](name string, ptr func(*T) *string) Field[T] {
	return pointerField(name, stringCodec, ptr)
}

// TextField declares a nullable text field.
func TextField[T any](name string, ptr func(*T) *pgtype.Text) Field[T] {
	return pointerField(name, textCodec, ptr)
}

// IntField declares a nullable integer field. Fractional numbers are rejected.
func IntField[T any](name string, ptr func(*T) *pgtype.Int8) Field[T] {
	return pointerField(name, intCodec, ptr)
}

// FloatField declares a nullable floating point field.
func FloatField[T any](name string, ptr func(*T) *pgtype.Float8) Field[T] {
	return pointerField(name, floatCodec, ptr)
}

// DecimalField declares a nullable decimal field. Decimals compare by
// numeric value, so 10.0 equals 10.00.
func DecimalField[T any](name string, ptr func(*T) *pgtype.Numeric) Field[T] {
	return pointerField(name, decimalCodec, ptr)
}

// BoolField declares a nullable boolean field.
func BoolField[T any](name string, ptr func(*T) *pgtype.Bool) Field[T] {
	return pointerField(name, boolCodec, ptr)
}

// DateField declares a nullable date field.
func DateField[T any](name string, ptr func(*T) *pgtype.Date) Field[T] {
	return pointerField(name, dateCodec, ptr)
}

// CustomField declares a field of a caller-defined comparable type.
// Values compare with ==; format may be nil to use fmt's %v.
func CustomField[T any, V comparable](name string, ptr func(*T) *V, parse func(models.Value) (V, error), format func(V) string) Field[T] {
	if format == nil {
		format = func(v V) string { return fmt.Sprint(v) }
	}
	c := codec[V]{
		kind:   KindCustom,
		coerce: parse,
		equal:  func(a, b V) bool { return a == b },
		format: format,
	}
	return pointerField(name, c, ptr)
}

var stringCodec = codec[string]{
	kind:   KindString,
	coerce: func(v models.Value) (string, error) { return v.String(), nil },
	equal:  func(a, b string) bool { return a == b },
	format: func(s string) string { return s },
}

var textCodec = codec[pgtype.Text]{
	kind: KindText,
	coerce: func(v models.Value) (pgtype.Text, error) {
		if v.IsEmpty() {
			return pgtype.Text{}, nil
		}
		return pgtype.Text{String: v.String(), Valid: true}, nil
	},
	equal: func(a, b pgtype.Text) bool {
		return a.Valid == b.Valid && (!a.Valid || a.String == b.String)
	},
	format: func(t pgtype.Text) string {
		if !t.Valid {
			return ""
		}
		return t.String
	},
}

var intCodec = codec[pgtype.Int8]{
	kind: KindInt,
	coerce: func(v models.Value) (pgtype.Int8, error) {
		var f float64
		switch v.Kind {
		case models.KindEmpty:
			return pgtype.Int8{}, nil
		case models.KindNumber:
			f = v.Number
		case models.KindText:
			s, ok := parser.CleanNumber(v.Text)
			if !ok {
				return pgtype.Int8{}, errNotInteger
			}
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return pgtype.Int8{Int64: i, Valid: true}, nil
			}
			var err error
			if f, err = strconv.ParseFloat(s, 64); err != nil {
				return pgtype.Int8{}, errNotInteger
			}
		default:
			return pgtype.Int8{}, errNotInteger
		}
		if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return pgtype.Int8{}, errNotInteger
		}
		return pgtype.Int8{Int64: int64(f), Valid: true}, nil
	},
	equal: func(a, b pgtype.Int8) bool {
		return a.Valid == b.Valid && (!a.Valid || a.Int64 == b.Int64)
	},
	format: func(i pgtype.Int8) string {
		if !i.Valid {
			return ""
		}
		return strconv.FormatInt(i.Int64, 10)
	},
}

var floatCodec = codec[pgtype.Float8]{
	kind: KindFloat,
	coerce: func(v models.Value) (pgtype.Float8, error) {
		switch v.Kind {
		case models.KindEmpty:
			return pgtype.Float8{}, nil
		case models.KindNumber:
			return pgtype.Float8{Float64: v.Number, Valid: true}, nil
		case models.KindText:
			if s, ok := parser.CleanNumber(v.Text); ok {
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					return pgtype.Float8{Float64: f, Valid: true}, nil
				}
			}
		}
		return pgtype.Float8{}, errNotNumber
	},
	equal: func(a, b pgtype.Float8) bool {
		return a.Valid == b.Valid && (!a.Valid || a.Float64 == b.Float64)
	},
	format: func(f pgtype.Float8) string {
		if !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	},
}

var decimalCodec = codec[pgtype.Numeric]{
	kind: KindDecimal,
	coerce: func(v models.Value) (pgtype.Numeric, error) {
		var s string
		switch v.Kind {
		case models.KindEmpty:
			return pgtype.Numeric{}, nil
		case models.KindNumber:
			s = strconv.FormatFloat(v.Number, 'f', -1, 64)
		case models.KindText:
			var ok bool
			if s, ok = parser.CleanNumber(v.Text); !ok {
				return pgtype.Numeric{}, errNotNumber
			}
		default:
			return pgtype.Numeric{}, errNotNumber
		}
		return ParseDecimal(s)
	},
	equal:  decimalEqual,
	format: FormatDecimal,
}

var boolCodec = codec[pgtype.Bool]{
	kind: KindBool,
	coerce: func(v models.Value) (pgtype.Bool, error) {
		switch v.Kind {
		case models.KindEmpty:
			return pgtype.Bool{}, nil
		case models.KindBool:
			return pgtype.Bool{Bool: v.Bool, Valid: true}, nil
		case models.KindNumber:
			if v.Number == 0 || v.Number == 1 {
				return pgtype.Bool{Bool: v.Number == 1, Valid: true}, nil
			}
		case models.KindText:
			if b, ok := parser.ParseBool(v.Text); ok {
				return pgtype.Bool{Bool: b, Valid: true}, nil
			}
		}
		return pgtype.Bool{}, errNotBool
	},
	equal: func(a, b pgtype.Bool) bool {
		return a.Valid == b.Valid && (!a.Valid || a.Bool == b.Bool)
	},
	format: func(b pgtype.Bool) string {
		if !b.Valid {
			return ""
		}
		return strconv.FormatBool(b.Bool)
	},
}

var dateCodec = codec[pgtype.Date]{
	kind: KindDate,
	coerce: func(v models.Value) (pgtype.Date, error) {
		switch v.Kind {
		case models.KindEmpty:
			return pgtype.Date{}, nil
		case models.KindDate:
			return pgtype.Date{Time: v.Time, Valid: true}, nil
		case models.KindNumber:
			if t, err := excelize.ExcelDateToTime(v.Number, false); err == nil {
				return pgtype.Date{Time: t, Valid: true}, nil
			}
		case models.KindText:
			if t, ok := parser.ParseDate(v.Text); ok {
				return pgtype.Date{Time: t, Valid: true}, nil
			}
		}
		return pgtype.Date{}, errNotDate
	},
	equal: func(a, b pgtype.Date) bool {
		if a.Valid != b.Valid {
			return false
		}
		if !a.Valid {
			return true
		}
		return a.InfinityModifier == b.InfinityModifier && a.Time.Equal(b.Time)
	},
	format: func(d pgtype.Date) string {
		switch {
		case !d.Valid:
			return ""
		case d.InfinityModifier == pgtype.Infinity:
			return "infinity"
		case d.InfinityModifier == pgtype.NegativeInfinity:
			return "-infinity"
		}
		return d.Time.Format("2006-01-02")
	},
}

// ParseDecimal parses a plain decimal string ("-12.50") into a valid Numeric.
func ParseDecimal(s string) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("%w: %v", errNotNumber, err)
	}
	return n, nil
}

// FormatDecimal renders n with its stored scale ("10.00"); invalid values
// render empty.
func FormatDecimal(n pgtype.Numeric) string {
	switch {
	case !n.Valid:
		return ""
	case n.NaN:
		return "NaN"
	case n.InfinityModifier == pgtype.Infinity:
		return "Infinity"
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return "-Infinity"
	}
	digits := "0"
	if n.Int != nil {
		digits = n.Int.String()
	}
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if n.Exp >= 0 {
		if digits == "0" {
			return "0"
		}
		return sign + digits + strings.Repeat("0", int(n.Exp))
	}
	scale := int(-n.Exp)
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	return sign + digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
}

func decimalEqual(a, b pgtype.Numeric) bool {
	if a.Valid != b.Valid {
		return false
	}
	if !a.Valid {
		return true
	}
	if a.NaN || b.NaN {
		return a.NaN && b.NaN
	}
	if a.InfinityModifier != b.InfinityModifier {
		return false
	}
	if a.InfinityModifier != pgtype.Finite {
		return true
	}
	return decimalRat(a).Cmp(decimalRat(b)) == 0
}

func decimalRat(n pgtype.Numeric) *big.Rat {
	num := new(big.Int)
	if n.Int != nil {
		num.Set(n.Int)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(absExp(n.Exp))), nil)
	if n.Exp >= 0 {
		return new(big.Rat).SetInt(num.Mul(num, scale))
	}
	return new(big.Rat).SetFrac(num, scale)
}

func absExp(e int32) int32 {
	if e < 0 {
		return -e
	}
	return e
}
