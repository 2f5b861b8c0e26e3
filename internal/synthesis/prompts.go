package synthesis

import (
	"fmt"
	"strings"

	"github.com/andeslegal/consulta/internal/classify"
)

// systemPersona is the base instruction every generation call carries.
const systemPersona = "Eres un asesor legal para PyMEs colombianas. Responde de forma concisa y práctica."

// categoryFocus sharpens the persona for categories with known pitfalls.
var categoryFocus = map[classify.Category]string{
	classify.CategoryFormation:   "Especialízate en constitución y registro de sociedades ante la Cámara de Comercio.",
	classify.CategoryLabor:       "Especialízate en el Código Sustantivo del Trabajo, prestaciones y liquidaciones.",
	classify.CategoryTax:         "Especialízate en el Estatuto Tributario y las obligaciones ante la DIAN.",
	classify.CategoryContractual: "Especialízate en contratos comerciales y sus cláusulas.",
}

// SystemPrompt returns the persona for a category.
func SystemPrompt(category classify.Category) string {
	if focus, ok := categoryFocus[category]; ok {
		return systemPersona + " " + focus
	}
	return systemPersona
}

// promptTemplate shapes the user message. All templates carry the same
// slots; only the closing instruction varies by query type.
const promptTemplate = `CONSULTA: %s

CONTEXTO: %s
DOCUMENTOS: %s
LEGISLACIÓN: %s

%s`

var queryTypeInstructions = map[classify.QueryType]string{
	classify.QueryTypeProcedure:    "Responde de forma práctica y concisa. Incluye solo los pasos esenciales, documentos principales y costos aproximados.",
	classify.QueryTypeDefinition:   "Define de forma clara y concisa, orientado a PyMEs colombianas.",
	classify.QueryTypeRequirements: "Lista los requisitos principales de forma organizada y concisa.",
	classify.QueryTypeGeneral:      "Responde de forma práctica y específica para PyMEs colombianas.",
}

// BuildPrompt assembles the user message for one question.
func BuildPrompt(question, userContext, documentsContext, legalContext string, queryType classify.QueryType) string {
	instruction, ok := queryTypeInstructions[queryType]
	if !ok {
		instruction = queryTypeInstructions[classify.QueryTypeGeneral]
	}
	if strings.TrimSpace(legalContext) == "" {
		legalContext = "Legislación colombiana aplicable."
	}
	return fmt.Sprintf(promptTemplate, question, userContext, documentsContext, legalContext, instruction)
}
