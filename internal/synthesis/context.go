package synthesis

import (
	"fmt"
	"strings"

	"github.com/andeslegal/consulta/internal/models"
)

// BuildUserContext renders the requester profile and free-form context into
// the prompt's CONTEXTO slot.
func BuildUserContext(profile *models.RequesterProfile, context string) string {
	if profile == nil && context == "" {
		return "No se proporcionó contexto específico del usuario."
	}

	var parts []string
	if profile != nil {
		if profile.CompanyType != "" {
			parts = append(parts, "Tipo de empresa: "+profile.CompanyType)
		}
		if profile.Industry != "" {
			parts = append(parts, "Sector: "+profile.Industry)
		}
		if profile.Employees > 0 {
			parts = append(parts, fmt.Sprintf("Número de empleados: %d", profile.Employees))
		}
		if profile.Location != "" {
			parts = append(parts, "Ubicación: "+profile.Location)
		}
	}
	if context != "" {
		parts = append(parts, "Contexto adicional: "+context)
	}

	if len(parts) == 0 {
		return "Contexto general para PyME colombiana."
	}
	return strings.Join(parts, "\n")
}

// BuildDocumentsContext renders matched user documents into the prompt's
// DOCUMENTOS slot.
func BuildDocumentsContext(docs []*models.MatchedDocument) string {
	if len(docs) == 0 {
		return "No se proporcionaron documentos específicos del usuario."
	}

	parts := make([]string, 0, len(docs))
	for i, md := range docs {
		name := md.Document.Name
		if name == "" {
			name = "Sin nombre"
		}
		entry := fmt.Sprintf("Documento %d: %s", i+1, name)
		if md.Document.FileType != "" {
			entry += fmt.Sprintf(" (Tipo: %s)", md.Document.FileType)
		}
		if md.Excerpt != "" {
			entry += "\nContenido relevante: " + md.Excerpt
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "\n\n")
}
