// Package classify maps raw questions to topical categories and query types.
package classify

// Category is a fixed topical bucket used to select retrieval and confidence
// parameters. The zero value is CategoryGeneral, the unclassified fallback.
type Category int

const (
	// CategoryGeneral is the fallback when no pattern set matches.
	CategoryGeneral Category = iota
	// CategoryFormation covers company incorporation and registration.
	CategoryFormation
	// CategoryLabor covers employment contracts, payroll, and severance.
	CategoryLabor
	// CategoryTax covers tax filings and obligations.
	CategoryTax
	// CategoryContractual covers commercial contracts and clauses.
	CategoryContractual
)

// String returns the category identifier used in envelopes and config keys.
func (c Category) String() string {
	switch c {
	case CategoryFormation:
		return "formation"
	case CategoryLabor:
		return "labor"
	case CategoryTax:
		return "tax"
	case CategoryContractual:
		return "contractual"
	case CategoryGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// Categories lists all categories in declaration priority order.
func Categories() []Category {
	return []Category{CategoryFormation, CategoryLabor, CategoryTax, CategoryContractual, CategoryGeneral}
}

// ParseCategory maps an identifier back to a Category; unknown names degrade
// to CategoryGeneral.
func ParseCategory(s string) Category {
	switch s {
	case "formation":
		return CategoryFormation
	case "labor":
		return CategoryLabor
	case "tax":
		return CategoryTax
	case "contractual":
		return CategoryContractual
	default:
		return CategoryGeneral
	}
}

// QueryType is the rhetorical shape of the question, used to select a prompt
// template. The zero value is QueryTypeGeneral.
type QueryType int

const (
	// QueryTypeGeneral is the fallback when no keyword family matches.
	QueryTypeGeneral QueryType = iota
	// QueryTypeProcedure asks how to do something.
	QueryTypeProcedure
	// QueryTypeDefinition asks what something means.
	QueryTypeDefinition
	// QueryTypeRequirements asks what is needed for something.
	QueryTypeRequirements
)

// String returns the query type identifier used in envelopes.
func (q QueryType) String() string {
	switch q {
	case QueryTypeProcedure:
		return "procedure"
	case QueryTypeDefinition:
		return "definition"
	case QueryTypeRequirements:
		return "requirements"
	case QueryTypeGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// Complexity is a coarse difficulty estimate, exposed for observability only.
type Complexity int

const (
	// ComplexityLow is a short question with at most one legal entity.
	ComplexityLow Complexity = iota
	// ComplexityMedium is a moderate question or one naming several entities.
	ComplexityMedium
	// ComplexityHigh is a long or multi-clause question.
	ComplexityHigh
)

// String returns the complexity label.
func (c Complexity) String() string {
	switch c {
	case ComplexityLow:
		return "low"
	case ComplexityMedium:
		return "medium"
	case ComplexityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Result holds everything the classifier derives from a question.
type Result struct {
	Category   Category
	QueryType  QueryType
	Complexity Complexity
	// Entities are recognized legal entities and institutions, in order of
	// first appearance.
	Entities []string
}
