// Package importer binds spreadsheet rows to typed records and reconciles
// them against their previously known counterparts.
package importer

import "fmt"

// Schema is the ordered accessor table of a record type. Fields are looked
// up by name when binding cells and when computing deltas.
type Schema[T any] struct {
	fields []Field[T]
	byName map[string]int
}

// NewSchema builds a schema from fields. Field names must be unique and
// non-empty.
func NewSchema[T any](fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{byName: make(map[string]int, len(fields))}
	for _, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("field %d has no name", len(s.fields))
		}
		if _, dup := s.byName[f.name]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.name)
		}
		s.byName[f.name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is intended for
// package-level schema variables.
func MustSchema[T any](fields ...Field[T]) *Schema[T] {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Field returns the accessor registered under name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// Lookup is like Field but reports a *MissingAccessorError for unknown names.
func (s *Schema[T]) Lookup(name string) (Field[T], error) {
	f, ok := s.Field(name)
	if !ok {
		return Field[T]{}, NewMissingAccessorError(name)
	}
	return f, nil
}

// Fields returns the accessors in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in declaration order.
func (s *Schema[T]) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}
