package classify

import (
	"regexp"
	"strings"
)

// categoryPatterns pairs a category with the regexes that detect it. The slice
// order is the tie-break: the first category whose pattern set matches wins.
type categoryPatterns struct {
	category Category
	patterns []*regexp.Regexp
}

// Classifier detects category, query type, complexity, and entities from raw
// question text. It is stateless after construction and safe for concurrent use.
type Classifier struct {
	categories []categoryPatterns

	procedureWords    []string
	definitionWords   []string
	requirementsWords []string

	entityPatterns []entityPattern
}

type entityPattern struct {
	name    string
	pattern *regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// NewClassifier creates a classifier with the built-in Colombian legal
// pattern sets.
func NewClassifier() *Classifier {
	return &Classifier{
		categories: []categoryPatterns{
			{CategoryFormation, compileAll(
				`constitu\w+`, `crear\s+empresa`, `\bsas\b`, `sociedad`, `cámara.*comercio`,
			)},
			{CategoryLabor, compileAll(
				`contrato.*trabajo`, `empleado`, `trabajador`, `nómina`, `prestaciones`, `liquidaci[óo]n`,
			)},
			{CategoryTax, compileAll(
				`impuesto`, `\bdian\b`, `tributari[oa]`, `renta`, `\biva\b`, `declaraci[óo]n`,
			)},
			// Labor is declared earlier, so "contrato de trabajo" never
			// reaches the bare contrato pattern here.
			{CategoryContractual, compileAll(
				`\bcontrato\b`, `cl[áa]usula`, `comercial`, `obligaci[óo]n`,
			)},
		},
		procedureWords:    []string{"cómo", "como", "pasos", "proceso", "procedimiento"},
		definitionWords:   []string{"qué es", "que es", "definición", "significa"},
		requirementsWords: []string{"requisitos", "necesito", "documentos", "papeles"},
		entityPatterns: []entityPattern{
			{"SAS", regexp.MustCompile(`\bsas\b`)},
			{"Ltda", regexp.MustCompile(`\bltda\b`)},
			{"DIAN", regexp.MustCompile(`\bdian\b`)},
			{"IVA", regexp.MustCompile(`\biva\b`)},
			{"Cámara de Comercio", regexp.MustCompile(`cámara\s+de\s+comercio|camara\s+de\s+comercio`)},
			{"MinTrabajo", regexp.MustCompile(`\bmintrabajo\b|ministerio\s+de(l)?\s+trabajo`)},
			{"Régimen Simple", regexp.MustCompile(`r[ée]gimen\s+simple`)},
		},
	}
}

// Classify analyzes question text. It is a pure function of the input and
// never fails; unrecognized input degrades to general/general.
func (c *Classifier) Classify(question string) Result {
	lower := strings.ToLower(question)
	return Result{
		Category:   c.detectCategory(lower),
		QueryType:  c.detectQueryType(lower),
		Complexity: c.estimateComplexity(lower),
		Entities:   c.extractEntities(lower),
	}
}

// detectCategory tests the case-folded question against each category's
// pattern set in declaration order.
func (c *Classifier) detectCategory(lower string) Category {
	for _, cp := range c.categories {
		for _, p := range cp.patterns {
			if p.MatchString(lower) {
				return cp.category
			}
		}
	}
	return CategoryGeneral
}

func (c *Classifier) detectQueryType(lower string) QueryType {
	if containsAny(lower, c.procedureWords) {
		return QueryTypeProcedure
	}
	if containsAny(lower, c.definitionWords) {
		return QueryTypeDefinition
	}
	if containsAny(lower, c.requirementsWords) {
		return QueryTypeRequirements
	}
	return QueryTypeGeneral
}

// estimateComplexity grades the question by length and entity density.
func (c *Classifier) estimateComplexity(lower string) Complexity {
	words := len(strings.Fields(lower))
	entities := len(c.extractEntities(lower))

	switch {
	case words > 25 || entities >= 3:
		return ComplexityHigh
	case words > 12 || entities >= 2:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// extractEntities returns recognized entities in first-appearance order.
func (c *Classifier) extractEntities(lower string) []string {
	type found struct {
		name string
		pos  int
	}
	var hits []found
	for _, ep := range c.entityPatterns {
		if loc := ep.pattern.FindStringIndex(lower); loc != nil {
			hits = append(hits, found{ep.name, loc[0]})
		}
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	entities := make([]string, len(hits))
	for i, h := range hits {
		entities[i] = h.name
	}
	return entities
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
