// Package docmatch finds the user documents most relevant to a question by
// lexical token overlap. It is deliberately simple: documents are few per
// requester, so a scan beats an index.
package docmatch

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/models"
	"github.com/andeslegal/consulta/pkg/utils"
)

const (
	// DefaultMaxMatches caps how many documents feed the prompt.
	DefaultMaxMatches = 3
	// DefaultExcerptChars bounds each matched document's excerpt.
	DefaultExcerptChars = 500
	// minTokenLen filters stopword-sized tokens out of the question.
	minTokenLen = 3
)

// Matcher scores user documents against questions.
type Matcher struct {
	maxMatches   int
	excerptChars int
	logger       *zap.Logger
}

// NewMatcher creates a matcher with the default caps.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		maxMatches:   DefaultMaxMatches,
		excerptChars: DefaultExcerptChars,
		logger:       logger,
	}
}

// Match scores each ready document by how many question tokens appear in its
// name or content, keeps those with at least one hit, and returns the top
// matches by score. Ties keep the input order.
func (m *Matcher) Match(question string, docs []*models.UserDocument) []*models.MatchedDocument {
	tokens := utils.Tokenize(question, minTokenLen)
	if len(tokens) == 0 || len(docs) == 0 {
		return nil
	}

	matched := make([]*models.MatchedDocument, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || !doc.Ready() {
			continue
		}
		score := overlapScore(tokens, doc)
		if score == 0 {
			continue
		}
		matched = append(matched, &models.MatchedDocument{
			Document:   doc,
			MatchScore: score,
			Excerpt:    utils.Truncate(doc.Content, m.excerptChars),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})
	if len(matched) > m.maxMatches {
		matched = matched[:m.maxMatches]
	}

	if len(matched) > 0 {
		m.logger.Debug("documents matched",
			zap.Int("candidates", len(docs)),
			zap.Int("matched", len(matched)))
	}
	return matched
}

// overlapScore counts how many distinct question tokens appear in the
// document's name or content.
func overlapScore(tokens []string, doc *models.UserDocument) int {
	name := strings.ToLower(doc.Name)
	content := strings.ToLower(doc.Content)
	score := 0
	for _, tok := range tokens {
		if strings.Contains(name, tok) || strings.Contains(content, tok) {
			score++
		}
	}
	return score
}
