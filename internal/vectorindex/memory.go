package vectorindex

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/andeslegal/consulta/internal/models"
)

// MemoryIndex is an in-memory index for tests and small fixtures. Fixed
// similarities can be attached per passage; when absent, a naive token-overlap
// similarity is computed against the query.
type MemoryIndex struct {
	mu       sync.RWMutex
	passages []*models.RetrievedPassage
	// Err, when set, is returned by every Search call. Lets tests simulate
	// connectivity failures.
	Err error
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Add appends passages to the index. Passages with Similarity > 0 keep that
// value as their reported similarity for every query.
func (m *MemoryIndex) Add(passages ...*models.RetrievedPassage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passages = append(m.passages, passages...)
}

// Search returns up to k passages ordered by similarity descending.
func (m *MemoryIndex) Search(ctx context.Context, query string, k int) ([]*models.RetrievedPassage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if k <= 0 || len(m.passages) == 0 {
		return nil, nil
	}

	results := make([]*models.RetrievedPassage, 0, len(m.passages))
	for _, p := range m.passages {
		similarity := p.Similarity
		if similarity == 0 {
			similarity = tokenOverlap(query, p.Text)
		}
		if similarity == 0 {
			continue
		}
		cp := *p
		cp.Similarity = similarity
		results = append(results, &cp)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Close is a no-op.
func (m *MemoryIndex) Close() error { return nil }

// tokenOverlap is the fraction of query tokens present in text.
func tokenOverlap(query, text string) float64 {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}
