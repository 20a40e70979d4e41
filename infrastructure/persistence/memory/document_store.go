package memory

import (
	"context"
	"slices"
	"sync"
)

// DocumentStore keeps a collection in process memory. Contents are lost on
// restart; it backs tests and ephemeral runs.
type DocumentStore[T any] struct {
	mu    sync.RWMutex
	name  string
	items []T
}

// NewDocumentStore creates a store optionally pre-filled with seed records
func NewDocumentStore[T any](name string, seed ...T) *DocumentStore[T] {
	return &DocumentStore[T]{
		name:  name,
		items: slices.Clone(seed),
	}
}

// Load returns a copy of the collection
func (s *DocumentStore[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Replace overwrites the collection with a copy of items
func (s *DocumentStore[T]) Replace(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]T, len(items))
	copy(s.items, items)
	return nil
}

// Name returns the collection name
func (s *DocumentStore[T]) Name() string {
	return s.name
}

// Len returns the number of stored records
func (s *DocumentStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
