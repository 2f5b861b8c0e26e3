package vectorindex

import (
	"context"
	"sync"

	"github.com/andeslegal/consulta/internal/models"
)

// LazyIndex defers construction of the underlying index until first use.
// Initialization runs at most once per process and is safe under concurrent
// first-use; after that the handle is read-only and shared across queries.
type LazyIndex struct {
	build func() (Index, error)
	once  sync.Once
	index Index
	err   error
}

// NewLazyIndex wraps build so it runs on the first Search call.
func NewLazyIndex(build func() (Index, error)) *LazyIndex {
	return &LazyIndex{build: build}
}

func (l *LazyIndex) init() {
	l.once.Do(func() {
		l.index, l.err = l.build()
	})
}

// Search initializes the underlying index if needed, then delegates.
// A failed initialization is sticky: every call reports the same error.
func (l *LazyIndex) Search(ctx context.Context, query string, k int) ([]*models.RetrievedPassage, error) {
	l.init()
	if l.err != nil {
		return nil, l.err
	}
	return l.index.Search(ctx, query, k)
}

// Close closes the underlying index if it was ever initialized.
func (l *LazyIndex) Close() error {
	if l.index != nil {
		return l.index.Close()
	}
	return nil
}
