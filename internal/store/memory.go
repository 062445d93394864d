// Package store provides lookups of previously stored records.
package store

import (
	"context"
	"sync"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
)

// Memory is a map-backed lookup. It is safe for concurrent use.
type Memory[T any] struct {
	mu      sync.RWMutex
	records map[string]*T
}

// NewMemory returns an empty lookup.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{records: make(map[string]*T)}
}

// FromBatch indexes the records of b by keyField. Faulty elements and
// records without key are skipped; the first record of a key wins.
func FromBatch[T any](b *sheetimport.Batch[T], keyField string) (*Memory[T], error) {
	field, err := b.Schema().Lookup(keyField)
	if err != nil {
		return nil, err
	}
	m := NewMemory[T]()
	for _, el := range b.Elements() {
		if el.IsFaulty() {
			continue
		}
		key := field.Format(el.Value())
		if key == "" {
			continue
		}
		if _, ok := m.records[key]; !ok {
			m.records[key] = el.Value()
		}
	}
	return m, nil
}

// Put stores rec under key.
func (m *Memory[T]) Put(key string, rec *T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = rec
}

// Find returns the record stored under key, or nil.
func (m *Memory[T]) Find(_ context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[key], nil
}

// Len returns the number of stored records.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

var _ sheetimport.Lookup[struct{}] = (*Memory[struct{}])(nil)
