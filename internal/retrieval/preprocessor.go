package retrieval

import (
	"regexp"
	"strings"
)

// abbreviation expands a short domain form to its full phrase.
type abbreviation struct {
	short   string
	full    string
	pattern *regexp.Regexp
}

// Preprocessor rewrites question text before it hits the vector index. The
// rewrite raises recall without changing the user-visible question.
type Preprocessor struct {
	abbreviations     []abbreviation
	jurisdictionTerms []string
	jurisdictionTail  string
	injectKeywords    int
}

// NewPreprocessor creates a preprocessor with the built-in abbreviation table
// and jurisdiction marker. injectKeywords bounds how many unmatched category
// boost keywords get appended (<=0 disables injection).
func NewPreprocessor(injectKeywords int) *Preprocessor {
	pairs := []struct{ short, full string }{
		{"sas", "sociedad por acciones simplificada"},
		{"ltda", "sociedad limitada"},
		{"iva", "impuesto al valor agregado"},
		{"pyme", "pequeña y mediana empresa"},
		{"microempresa", "micro empresa pequeña"},
	}
	abbrs := make([]abbreviation, len(pairs))
	for i, p := range pairs {
		abbrs[i] = abbreviation{
			short:   p.short,
			full:    p.full,
			pattern: regexp.MustCompile(`\b` + p.short + `\b`),
		}
	}
	return &Preprocessor{
		abbreviations:     abbrs,
		jurisdictionTerms: []string{"colombia", "colombiano", "colombiana"},
		jurisdictionTail:  "colombia legislación colombiana",
		injectKeywords:    injectKeywords,
	}
}

// Preprocess normalizes the question, expands abbreviations, injects missing
// boost keywords, and appends the jurisdiction marker when absent.
func (p *Preprocessor) Preprocess(question string, cfg CategoryConfig) string {
	processed := strings.ToLower(strings.TrimSpace(question))

	for _, a := range p.abbreviations {
		processed = a.pattern.ReplaceAllString(processed, a.full)
	}

	if p.injectKeywords > 0 {
		// Only the leading keywords are candidates; the list is ordered by
		// how strongly each keyword characterizes the category.
		candidates := cfg.BoostKeywords
		if len(candidates) > p.injectKeywords {
			candidates = candidates[:p.injectKeywords]
		}
		var missing []string
		for _, kw := range candidates {
			if !strings.Contains(processed, kw) {
				missing = append(missing, kw)
			}
		}
		if len(missing) > 0 {
			processed += " " + strings.Join(missing, " ")
		}
	}

	if !containsAnyTerm(processed, p.jurisdictionTerms) {
		processed += " " + p.jurisdictionTail
	}

	return processed
}

func containsAnyTerm(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
