package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/classify"
	"github.com/andeslegal/consulta/internal/models"
	"github.com/andeslegal/consulta/internal/vectorindex"
	"github.com/andeslegal/consulta/pkg/utils"
)

// Retriever runs the full retrieval pass for one question: preprocess the
// query, search the vector index with category tuning, score and filter the
// candidates, then assemble the legal context block.
type Retriever struct {
	index        vectorindex.Index
	config       *Config
	preprocessor *Preprocessor
	scorer       *Scorer
	logger       *zap.Logger
}

// NewRetriever creates a retriever over index. A nil config uses defaults.
func NewRetriever(index vectorindex.Index, config *Config, logger *zap.Logger) *Retriever {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		index:        index,
		config:       config,
		preprocessor: NewPreprocessor(config.InjectKeywords),
		scorer:       NewScorer(config),
		logger:       logger,
	}
}

// Result is the outcome of one retrieval pass. An empty Context with no
// Passages means nothing relevant was found; answering still proceeds.
type Result struct {
	// Query is the preprocessed query text that was searched.
	Query string
	// Context is the delimited block of passages handed to synthesis.
	Context string
	// Sources lists the distinct source identifiers, best first.
	Sources []string
	// Passages are the surviving scored passages in rank order.
	Passages []*models.ScoredPassage
}

// Retrieve searches the index for passages relevant to question under the
// category's tuning. Index failures degrade to an empty result so the caller
// can still answer from general knowledge.
func (r *Retriever) Retrieve(ctx context.Context, question string, category classify.Category) *Result {
	cfg := r.config.CategoryConfig(category)
	processed := r.preprocessor.Preprocess(question, cfg)

	candidates, err := r.index.Search(ctx, processed, cfg.ResultCount)
	if err != nil {
		r.logger.Warn("vector index search failed, answering without legal context",
			zap.String("category", category.String()),
			zap.Error(err))
		return &Result{Query: processed}
	}
	if len(candidates) == 0 {
		r.logger.Debug("no passages found",
			zap.String("category", category.String()),
			zap.String("query", processed))
		return &Result{Query: processed}
	}

	scored := r.scorer.ScoreAll(candidates, cfg)
	kept := TopN(FilterByThreshold(scored, cfg.Threshold), r.config.MaxPassages)
	if len(kept) == 0 {
		r.logger.Debug("all passages below threshold",
			zap.String("category", category.String()),
			zap.Float64("threshold", cfg.Threshold),
			zap.Int("candidates", len(scored)))
		return &Result{Query: processed}
	}

	r.logger.Debug("retrieval complete",
		zap.String("category", category.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("kept", len(kept)))

	return &Result{
		Query:    processed,
		Context:  r.buildContext(kept),
		Sources:  dedupeSources(kept),
		Passages: kept,
	}
}

// buildContext renders the kept passages into the block synthesis consumes.
// Each passage is annotated with its source and relevance so the model can
// cite and weigh them.
func (r *Retriever) buildContext(passages []*models.ScoredPassage) string {
	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Fuente: %s | Relevancia: %.2f]\n", p.Source, p.Relevance)
		b.WriteString(utils.Truncate(p.Text, r.config.MaxPassageChars))
	}
	return b.String()
}

// dedupeSources returns the distinct source identifiers in rank order.
func dedupeSources(passages []*models.ScoredPassage) []string {
	seen := make(map[string]struct{}, len(passages))
	sources := make([]string, 0, len(passages))
	for _, p := range passages {
		if p.Source == "" {
			continue
		}
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		sources = append(sources, p.Source)
	}
	return sources
}
