package sheetimport

import "context"

// Lookup finds the stored counterpart of an imported record by key.
// Find returns nil without error when no record exists.
type Lookup[T any] interface {
	Find(ctx context.Context, key string) (*T, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc[T any] func(ctx context.Context, key string) (*T, error)

// Find calls f.
func (f LookupFunc[T]) Find(ctx context.Context, key string) (*T, error) {
	return f(ctx, key)
}
