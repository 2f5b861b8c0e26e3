// Package engine orchestrates the query pipeline: classify, retrieve, match,
// synthesize, score, assemble.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/classify"
	"github.com/andeslegal/consulta/internal/confidence"
	"github.com/andeslegal/consulta/internal/docmatch"
	"github.com/andeslegal/consulta/internal/models"
	"github.com/andeslegal/consulta/internal/retrieval"
	"github.com/andeslegal/consulta/internal/synthesis"
	"github.com/andeslegal/consulta/internal/vectorindex"
)

// failureAnswer is the answer text of the degraded envelope.
const failureAnswer = "Lo siento, ocurrió un error al procesar tu consulta. Por favor intenta nuevamente."

// Engine wires the pipeline components. All collaborators are injected so
// tests can run against memory and mock implementations.
type Engine struct {
	classifier  *classify.Classifier
	retriever   *retrieval.Retriever
	matcher     *docmatch.Matcher
	synthesizer *synthesis.Synthesizer
	estimator   *confidence.Estimator
	index       vectorindex.Index
	cache       *AnswerCache
	logger      *zap.Logger

	maxQuestionLen int
}

// Options tune engine construction.
type Options struct {
	// MaxQuestionLength bounds accepted question text; zero uses the model
	// default.
	MaxQuestionLength int
	// CacheSize bounds the answer cache; zero uses the default, negative
	// disables caching.
	CacheSize int
}

// New creates an engine over the given collaborators.
func New(index vectorindex.Index, retriever *retrieval.Retriever, synthesizer *synthesis.Synthesizer, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	var cache *AnswerCache
	if opts.CacheSize >= 0 {
		cache = NewAnswerCache(opts.CacheSize)
	}
	return &Engine{
		classifier:     classify.NewClassifier(),
		retriever:      retriever,
		matcher:        docmatch.NewMatcher(logger),
		synthesizer:    synthesizer,
		estimator:      confidence.NewEstimator(nil),
		index:          index,
		cache:          cache,
		logger:         logger,
		maxQuestionLen: opts.MaxQuestionLength,
	}
}

// WithEstimator replaces the confidence estimator, for configured constants.
func (e *Engine) WithEstimator(est *confidence.Estimator) *Engine {
	e.estimator = est
	return e
}

// Answer runs the full pipeline for one question. The only error it returns
// is question validation; every downstream failure, including panics, is
// contained and yields a degraded envelope.
func (e *Engine) Answer(ctx context.Context, q *models.Question) (env *models.ResponseEnvelope, err error) {
	if err := q.Validate(e.maxQuestionLen); err != nil {
		return nil, err
	}

	start := time.Now()
	queryID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("query pipeline panicked",
				zap.String("query_id", queryID),
				zap.Any("panic", r))
			env = e.failureEnvelope(queryID, q.Text, start)
			err = nil
		}
	}()

	if e.cache != nil {
		if cached, ok := e.cache.Get(CacheKey(q.Text)); ok {
			cached.QueryID = queryID
			cached.FromCache = true
			cached.ResponseTimeMS = time.Since(start).Milliseconds()
			e.logger.Debug("answer served from cache", zap.String("query_id", queryID))
			return cached, nil
		}
	}

	cls := e.classifier.Classify(q.Text)
	e.logger.Debug("question classified",
		zap.String("query_id", queryID),
		zap.String("category", cls.Category.String()),
		zap.String("query_type", cls.QueryType.String()))

	// Legal retrieval and document matching are independent; run them
	// concurrently. Both degrade to empty results instead of failing.
	var (
		wg        sync.WaitGroup
		retrieved *retrieval.Result
		matched   []*models.MatchedDocument
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		retrieved = e.retriever.Retrieve(ctx, q.Text, cls.Category)
	}()
	go func() {
		defer wg.Done()
		matched = e.matcher.Match(q.Text, q.Documents)
	}()
	wg.Wait()

	out, synthErr := e.synthesizer.Synthesize(ctx, &synthesis.Input{
		Question:         q.Text,
		Category:         cls.Category,
		QueryType:        cls.QueryType,
		LegalContext:     retrieved.Context,
		UserContext:      synthesis.BuildUserContext(q.Profile, q.Context),
		DocumentsContext: synthesis.BuildDocumentsContext(matched),
	})

	score := e.estimator.Estimate(confidence.Signals{
		Category:        cls.Category,
		LegalSources:    len(retrieved.Sources),
		MatchedDocs:     len(matched),
		SynthesisFailed: synthErr != nil,
	})

	usedDocuments := documentNames(matched)
	elapsed := time.Since(start).Milliseconds()

	env = &models.ResponseEnvelope{
		QueryID:        queryID,
		Answer:         out.Answer,
		Sources:        assembleSources(retrieved.Sources, usedDocuments),
		Confidence:     score,
		Category:       cls.Category.String(),
		QueryType:      cls.QueryType.String(),
		UsedDocuments:  usedDocuments,
		ResponseTimeMS: elapsed,
		TokensUsed:     out.TokensUsed,
		Analysis: models.QueryAnalysis{
			OriginalQuestion:  q.Text,
			ProcessedQuestion: retrieved.Query,
			Category:          cls.Category.String(),
			QueryType:         cls.QueryType.String(),
			Complexity:        cls.Complexity.String(),
			Entities:          cls.Entities,
			ProcessingTimeMS:  elapsed,
		},
		RelatedQueries: relatedQueries(cls.Category),
	}

	if e.cache != nil && synthErr == nil {
		e.cache.Set(CacheKey(q.Text), env)
	}

	e.logger.Info("query answered",
		zap.String("query_id", queryID),
		zap.String("category", env.Category),
		zap.Float64("confidence", env.Confidence),
		zap.Int("legal_passages", len(retrieved.Passages)),
		zap.Int("matched_documents", len(matched)),
		zap.Int64("elapsed_ms", elapsed),
		zap.Bool("degraded", synthErr != nil))
	return env, nil
}

// failureEnvelope is the degraded result for an unhandled pipeline failure.
func (e *Engine) failureEnvelope(queryID, question string, start time.Time) *models.ResponseEnvelope {
	elapsed := time.Since(start).Milliseconds()
	return &models.ResponseEnvelope{
		QueryID:        queryID,
		Answer:         failureAnswer,
		Sources:        []string{models.FallbackSource},
		Confidence:     0.0,
		Category:       "error",
		QueryType:      classify.QueryTypeGeneral.String(),
		ResponseTimeMS: elapsed,
		Analysis: models.QueryAnalysis{
			OriginalQuestion: question,
			Category:         "error",
			QueryType:        classify.QueryTypeGeneral.String(),
			Complexity:       classify.ComplexityLow.String(),
			Entities:         []string{},
			ProcessingTimeMS: elapsed,
		},
		RelatedQueries: generalSuggestions.Queries,
	}
}

// assembleSources merges legal sources and document labels, legal first,
// deduplicated, with the fallback label when both are empty.
func assembleSources(legal, documents []string) []string {
	seen := make(map[string]struct{}, len(legal)+len(documents))
	sources := make([]string, 0, len(legal)+len(documents))
	for _, s := range append(append([]string{}, legal...), documents...) {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sources = append(sources, s)
	}
	if len(sources) == 0 {
		return []string{models.FallbackSource}
	}
	return sources
}

func documentNames(matched []*models.MatchedDocument) []string {
	names := make([]string, 0, len(matched))
	for _, md := range matched {
		name := md.Document.Name
		if name == "" {
			name = "Documento sin nombre"
		}
		names = append(names, name)
	}
	return names
}

// Status describes the engine's operational state.
type Status struct {
	IndexAvailable bool     `json:"index_available"`
	Categories     []string `json:"categories"`
	CachedAnswers  int      `json:"cached_answers"`
}

// Status probes the vector index and reports supported categories.
func (e *Engine) Status(ctx context.Context) Status {
	available := false
	if e.index != nil {
		_, err := e.index.Search(ctx, "estado", 1)
		available = err == nil
	}

	cats := make([]string, 0, len(classify.Categories()))
	for _, c := range classify.Categories() {
		cats = append(cats, c.String())
	}

	cached := 0
	if e.cache != nil {
		cached = e.cache.Len()
	}
	return Status{
		IndexAvailable: available,
		Categories:     cats,
		CachedAnswers:  cached,
	}
}
