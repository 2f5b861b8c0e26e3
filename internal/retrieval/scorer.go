package retrieval

import (
	"sort"
	"strings"

	"github.com/andeslegal/consulta/internal/models"
)

// Scorer blends raw similarity with source-type and keyword boosts:
//
//	relevance = similarity * source_type_boost * keyword_boost
//
// Both boosts are >= 1.0, so relevance is monotonic in similarity for a
// fixed passage.
type Scorer struct {
	config *Config
	// sourceTags is the sorted SourceBoosts key set, so the substring
	// fallback scans tags in a fixed order.
	sourceTags []string
}

// NewScorer creates a scorer using the boost tables in config.
func NewScorer(config *Config) *Scorer {
	if config == nil {
		config = DefaultConfig()
	}
	tags := make([]string, 0, len(config.SourceBoosts))
	for tag := range config.SourceBoosts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return &Scorer{config: config, sourceTags: tags}
}

// Score computes the blended relevance for one passage under cfg.
func (s *Scorer) Score(p *models.RetrievedPassage, cfg CategoryConfig) float64 {
	return p.Similarity * s.sourceBoost(p) * s.keywordBoost(p.Text, cfg.BoostKeywords)
}

// sourceBoost looks up the source-type multiplier. The explicit SourceType tag
// wins; otherwise the source identifier is scanned for known type substrings.
// Unrecognized sources get 1.0.
func (s *Scorer) sourceBoost(p *models.RetrievedPassage) float64 {
	if p.SourceType != "" {
		if boost, ok := s.config.SourceBoosts[p.SourceType]; ok {
			return boost
		}
	}
	source := strings.ToLower(p.Source)
	for _, tag := range s.sourceTags {
		if strings.Contains(source, tag) {
			return s.config.SourceBoosts[tag]
		}
	}
	return 1.0
}

// keywordBoost is 1 + step per category boost keyword present in the text.
func (s *Scorer) keywordBoost(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 1.0
	}
	lower := strings.ToLower(text)
	matching := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matching++
		}
	}
	return 1.0 + float64(matching)*s.config.KeywordBoostStep
}

// ScoreAll scores candidates and returns them sorted by relevance descending
// with 1-based ranks assigned. The input order breaks ties.
func (s *Scorer) ScoreAll(candidates []*models.RetrievedPassage, cfg CategoryConfig) []*models.ScoredPassage {
	scored := make([]*models.ScoredPassage, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, &models.ScoredPassage{
			RetrievedPassage: *p,
			Relevance:        s.Score(p, cfg),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Relevance > scored[j].Relevance
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// FilterByThreshold drops passages whose relevance is below threshold.
func FilterByThreshold(passages []*models.ScoredPassage, threshold float64) []*models.ScoredPassage {
	kept := make([]*models.ScoredPassage, 0, len(passages))
	for _, p := range passages {
		if p.Relevance >= threshold {
			kept = append(kept, p)
		}
	}
	return kept
}

// TopN returns the first n passages.
func TopN(passages []*models.ScoredPassage, n int) []*models.ScoredPassage {
	if n >= len(passages) {
		return passages
	}
	return passages[:n]
}
