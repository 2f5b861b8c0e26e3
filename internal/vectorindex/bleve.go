package vectorindex

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/andeslegal/consulta/internal/models"
)

// BleveIndex is a local lexical fallback for the remote vector index. It keeps
// the engine answering when the remote index is unreachable or not configured,
// trading semantic recall for availability. Scores are normalized into [0,1)
// so downstream relevance scoring treats both implementations the same.
type BleveIndex struct {
	index bleve.Index
}

// corpusEntry is the indexed document shape.
type corpusEntry struct {
	Text       string `json:"text"`
	Source     string `json:"source"`
	SourceType string `json:"source_type"`
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// reused; remove the directory to force a full rebuild after mapping changes.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize, no stemming, so Spanish legal
	// terms match exactly as written.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("text", textFieldMapping)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("source", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("source_type", keywordFieldMapping)
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Add indexes one passage under id.
func (b *BleveIndex) Add(id, text, source, sourceType string) error {
	return b.index.Index(id, &corpusEntry{Text: text, Source: source, SourceType: sourceType})
}

// Search runs a match query over the passage text and returns up to k hits
// with normalized similarities.
func (b *BleveIndex) Search(ctx context.Context, query string, k int) ([]*models.RetrievedPassage, error) {
	q := bleve.NewMatchQuery(query)
	q.SetField("text")
	req := bleve.NewSearchRequest(q)
	req.Size = k
	req.Fields = []string{"text", "source", "source_type"}

	results, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	passages := make([]*models.RetrievedPassage, 0, len(results.Hits))
	for _, hit := range results.Hits {
		passages = append(passages, &models.RetrievedPassage{
			Text:       fieldString(hit.Fields, "text"),
			Source:     fieldString(hit.Fields, "source"),
			SourceType: fieldString(hit.Fields, "source_type"),
			// Bleve scores are unbounded; score/(score+1) maps them into
			// [0,1) while preserving order.
			Similarity: hit.Score / (hit.Score + 1),
		})
	}
	return passages, nil
}

// Count returns the number of indexed passages.
func (b *BleveIndex) Count() (uint64, error) {
	return b.index.DocCount()
}

// Delete removes a passage by id.
func (b *BleveIndex) Delete(id string) error {
	return b.index.Delete(id)
}

// Close closes the underlying index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
