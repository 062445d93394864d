package importer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Record is a dynamically shaped record for callers that configure their
// columns at runtime instead of declaring a struct. Values hold pgtype
// values for the typed kinds and strings for KindString.
type Record struct {
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Get returns the value stored under name, or nil.
func (r *Record) Get(name string) any {
	if r == nil {
		return nil
	}
	return r.values[name]
}

// Set stores v under name.
func (r *Record) Set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	r.values[name] = v
}

// Len returns the number of stored values.
func (r *Record) Len() int { return len(r.values) }

// RecordField describes one field of a Record schema.
type RecordField struct {
	Name string
	Kind Kind
}

// RecordSchema builds the schema of Record for the given fields. Custom kinds
// are not supported and are treated as text.
func RecordSchema(fields ...RecordField) (*Schema[Record], error) {
	out := make([]Field[Record], 0, len(fields))
	for _, f := range fields {
		out = append(out, recordField(f))
	}
	return NewSchema(out...)
}

func recordField(f RecordField) Field[Record] {
	switch f.Kind {
	case KindString:
		return slotField(f.Name, stringCodec)
	case KindInt:
		return slotField(f.Name, intCodec)
	case KindFloat:
		return slotField(f.Name, floatCodec)
	case KindDecimal:
		return slotField(f.Name, decimalCodec)
	case KindBool:
		return slotField(f.Name, boolCodec)
	case KindDate:
		return slotField(f.Name, dateCodec)
	default:
		return slotField(f.Name, textCodec)
	}
}

func slotField[V any](name string, c codec[V]) Field[Record] {
	return newField(name, c,
		func(r *Record) V {
			v, _ := r.values[name].(V)
			return v
		},
		func(r *Record, v V) { r.Set(name, v) })
}

// Scan stores a database value under name, converting it into the storage
// type of kind. A nil src stores the absent value.
func (r *Record) Scan(name string, kind Kind, src any) error {
	var (
		v   any
		err error
	)
	switch kind {
	case KindString:
		s := ""
		if src != nil {
			s = fmt.Sprint(src)
		}
		v = s
	case KindInt:
		var i pgtype.Int8
		err = scanInto(&i, src)
		v = i
	case KindFloat:
		var f pgtype.Float8
		err = scanInto(&f, src)
		v = f
	case KindDecimal:
		var n pgtype.Numeric
		switch x := src.(type) {
		case pgtype.Numeric:
			n = x
		case float64:
			n, err = ParseDecimal(strconv.FormatFloat(x, 'f', -1, 64))
		case int64:
			n, err = ParseDecimal(strconv.FormatInt(x, 10))
		default:
			err = scanInto(&n, src)
		}
		v = n
	case KindBool:
		var b pgtype.Bool
		err = scanInto(&b, src)
		v = b
	case KindDate:
		var d pgtype.Date
		if t, ok := src.(time.Time); ok {
			d = pgtype.Date{Time: t, Valid: true}
		} else {
			err = scanInto(&d, src)
		}
		v = d
	default:
		var t pgtype.Text
		if src != nil {
			if s, ok := src.(string); ok {
				t = pgtype.Text{String: s, Valid: true}
			} else {
				t = pgtype.Text{String: fmt.Sprint(src), Valid: true}
			}
		}
		v = t
	}
	if err != nil {
		return fmt.Errorf("scan %s field %q: %w", kind, name, err)
	}
	r.Set(name, v)
	return nil
}

type scanner interface {
	Scan(src any) error
}

func scanInto(dst scanner, src any) error {
	if src == nil {
		return nil
	}
	return dst.Scan(src)
}
