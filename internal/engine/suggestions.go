package engine

import "github.com/andeslegal/consulta/internal/classify"

// SuggestionSet is a titled group of example questions for one category.
type SuggestionSet struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Queries  []string `json:"queries"`
}

var suggestionTable = map[classify.Category]SuggestionSet{
	classify.CategoryFormation: {
		Category: "formation",
		Title:    "Constitución de Empresas",
		Queries: []string{
			"¿Cómo constituir una SAS en Colombia?",
			"¿Qué documentos necesito para crear mi empresa?",
			"¿Cuánto cuesta registrar una sociedad?",
			"¿Cuál es la diferencia entre SAS y Ltda?",
		},
	},
	classify.CategoryLabor: {
		Category: "labor",
		Title:    "Derecho Laboral",
		Queries: []string{
			"¿Cuáles son las prestaciones sociales obligatorias?",
			"¿Cómo calcular la liquidación de un empleado?",
			"¿Qué pasos seguir para despedir un trabajador?",
			"¿Cómo hacer un contrato de trabajo?",
		},
	},
	classify.CategoryTax: {
		Category: "tax",
		Title:    "Obligaciones Tributarias",
		Queries: []string{
			"¿Cómo presentar la declaración de renta?",
			"¿Qué deducciones puedo aplicar en mi empresa?",
			"¿Cuál régimen tributario me conviene?",
			"¿Cómo calcular el IVA de mis ventas?",
		},
	},
	classify.CategoryContractual: {
		Category: "contractual",
		Title:    "Contratos y Acuerdos",
		Queries: []string{
			"¿Cómo redactar un contrato comercial?",
			"¿Qué cláusulas debe tener un contrato de servicios?",
			"¿Cómo terminar un contrato legalmente?",
			"¿Qué hacer si incumplen un contrato?",
		},
	},
}

// generalSuggestions is the fallback set for unrecognized categories.
var generalSuggestions = SuggestionSet{
	Category: "general",
	Title:    "Consultas Populares",
	Queries: []string{
		"¿Cómo constituir mi empresa?",
		"¿Cuáles son mis obligaciones laborales?",
		"¿Qué impuestos debo pagar?",
		"¿Cómo proteger mi negocio legalmente?",
	},
}

// Suggestions returns the example questions for a category.
func Suggestions(category classify.Category) SuggestionSet {
	if set, ok := suggestionTable[category]; ok {
		return set
	}
	return generalSuggestions
}

// SuggestionCatalog returns every suggestion set in category priority order.
func SuggestionCatalog() []SuggestionSet {
	sets := make([]SuggestionSet, 0, len(suggestionTable)+1)
	for _, cat := range classify.Categories() {
		if set, ok := suggestionTable[cat]; ok {
			sets = append(sets, set)
		}
	}
	sets = append(sets, generalSuggestions)
	return sets
}

// relatedQueries picks the suggestion list attached to an envelope.
func relatedQueries(category classify.Category) []string {
	return Suggestions(category).Queries
}
