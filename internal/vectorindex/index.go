// Package vectorindex defines the vector index collaborator boundary and its
// client implementations. The engine depends on the Index interface only; how
// embeddings are computed and how the index persists data is the provider's
// concern.
package vectorindex

import (
	"context"

	"github.com/andeslegal/consulta/internal/models"
)

// Index is the similarity-search collaborator. Search returns up to k
// candidate passages with similarities in [0,1]. An empty result with a nil
// error means "no matches"; connectivity problems are reported as errors so
// callers can tell the two apart.
type Index interface {
	Search(ctx context.Context, query string, k int) ([]*models.RetrievedPassage, error)
	Close() error
}
