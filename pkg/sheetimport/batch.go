package sheetimport

import (
	"context"
	"fmt"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"golang.org/x/sync/errgroup"
)

// Summary counts the elements of a batch per state.
type Summary = models.ImportSummary

// Batch holds the elements imported from one sheet.
type Batch[T any] struct {
	// ID identifies the batch in logs and reports.
	ID string
	// Sheet is the name of the source sheet.
	Sheet string
	// HeaderRow is the zero-based row holding the column titles.
	HeaderRow int
	// Columns are the resolved column definitions.
	Columns parser.Columns

	schema   *importer.Schema[T]
	workers  int
	elements []*importer.Element[T]
	rows     []int
}

// Len returns the number of elements.
func (b *Batch[T]) Len() int { return len(b.elements) }

// Element returns the element at position i.
func (b *Batch[T]) Element(i int) *importer.Element[T] { return b.elements[i] }

// Elements returns all elements in row order.
func (b *Batch[T]) Elements() []*importer.Element[T] {
	return append([]*importer.Element[T](nil), b.elements...)
}

// Row returns the zero-based sheet row of the element at position i.
func (b *Batch[T]) Row(i int) int { return b.rows[i] }

// Schema returns the accessor table of the batch records.
func (b *Batch[T]) Schema() *importer.Schema[T] { return b.schema }

// SelectAll selects or deselects every element. Faulty elements stay
// deselected.
func (b *Batch[T]) SelectAll(selected bool) {
	for _, el := range b.elements {
		el.SetSelected(selected)
	}
}

// Selected returns the elements that should be applied.
func (b *Batch[T]) Selected() []*importer.Element[T] {
	var out []*importer.Element[T]
	for _, el := range b.elements {
		if el.Selected() {
			out = append(out, el)
		}
	}
	return out
}

// Summary counts the elements per state. Faulty elements are counted only
// as faulty.
func (b *Batch[T]) Summary() Summary {
	s := Summary{Total: len(b.elements)}
	for _, el := range b.elements {
		if el.Selected() {
			s.Selected++
		}
		state, err := el.State()
		if err != nil {
			s.Unreconciled++
			continue
		}
		switch state {
		case importer.StateNew:
			s.New++
		case importer.StateModified:
			s.Modified++
		case importer.StateUnmodified:
			s.Unmodified++
		case importer.StateFaulty:
			s.Faulty++
		}
	}
	return s
}

// Reconcile looks up the stored counterpart of every element by the value
// of keyField and reconciles the element against it. New and modified
// elements are selected, all others deselected. Elements without key or
// with a key already used by an earlier row get a ValidationFailed fault;
// elements without key stay unreconciled. Lookup errors abort the
// reconciliation.
func (b *Batch[T]) Reconcile(ctx context.Context, lookup Lookup[T], keyField string) error {
	field, err := b.schema.Lookup(keyField)
	if err != nil {
		return err
	}

	keys := make([]string, len(b.elements))
	firstRow := make(map[string]int, len(b.elements))
	for i, el := range b.elements {
		key := field.Format(el.Value())
		if key == "" {
			el.PutFault(importer.ValidationFailed{Field: keyField, Reason: "missing key"})
			continue
		}
		if row, dup := firstRow[key]; dup {
			el.PutFault(importer.ValidationFailed{
				Field:  keyField,
				Reason: fmt.Sprintf("duplicate key %q, first used in row %d", key, row+1),
			})
		} else {
			firstRow[key] = b.rows[i]
		}
		keys[i] = key
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.workers, 1))
	for i, el := range b.elements {
		if keys[i] == "" {
			continue
		}
		i, el := i, el
		g.Go(func() error {
			old, err := lookup.Find(ctx, keys[i])
			if err != nil {
				return fmt.Errorf("lookup %q (row %d): %w", keys[i], b.rows[i]+1, err)
			}
			el.Reconcile(old)
			el.SetSelected(el.IsNew() || el.IsModified())
			return nil
		})
	}
	return g.Wait()
}
