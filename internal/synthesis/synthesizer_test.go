package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andeslegal/consulta/internal/classify"
	"github.com/andeslegal/consulta/internal/generation"
	"github.com/andeslegal/consulta/internal/models"
)

func TestSynthesizer_Synthesize(t *testing.T) {
	gen := generation.NewMockGenerator("Para constituir una SAS debe registrar los estatutos en la Cámara de Comercio.")
	s := NewSynthesizer(gen, nil)

	out, err := s.Synthesize(context.Background(), &Input{
		Question:     "¿Cómo constituyo una SAS?",
		Category:     classify.CategoryFormation,
		QueryType:    classify.QueryTypeProcedure,
		LegalContext: "[Fuente: codigo_comercio.txt]\nLa sociedad por acciones simplificada...",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !strings.Contains(out.Answer, "Cámara de Comercio") {
		t.Errorf("unexpected answer %q", out.Answer)
	}

	reqs := gen.Requests()
	if len(reqs) != 1 {
		t.Fatalf("generator called %d times, want 1", len(reqs))
	}
	req := reqs[0]
	if req.MaxTokens != 1200 || req.Temperature != 0.1 {
		t.Errorf("generation parameters = %d/%v, want 1200/0.1", req.MaxTokens, req.Temperature)
	}
	if !strings.Contains(req.System, "Cámara de Comercio") {
		t.Errorf("system prompt missing formation focus: %q", req.System)
	}
	if !strings.Contains(req.Prompt, "CONSULTA: ¿Cómo constituyo una SAS?") {
		t.Errorf("prompt missing question: %q", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "pasos esenciales") {
		t.Errorf("prompt missing procedure instruction: %q", req.Prompt)
	}
}

func TestSynthesizer_GeneratorFailure(t *testing.T) {
	gen := &generation.MockGenerator{Err: errors.New("timeout")}
	s := NewSynthesizer(gen, nil)

	out, err := s.Synthesize(context.Background(), &Input{
		Question: "¿Qué es el IVA?",
		Category: classify.CategoryTax,
	})
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if out == nil || out.Answer != FallbackAnswer {
		t.Errorf("expected fallback answer, got %+v", out)
	}
}

func TestSynthesizer_EmptyLegalContextPlaceholder(t *testing.T) {
	gen := generation.NewMockGenerator("respuesta")
	s := NewSynthesizer(gen, nil)

	if _, err := s.Synthesize(context.Background(), &Input{
		Question: "pregunta",
		Category: classify.CategoryGeneral,
	}); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !strings.Contains(gen.Requests()[0].Prompt, "Legislación colombiana aplicable.") {
		t.Error("empty legal context must be replaced by the placeholder")
	}
}

func TestSynthesizer_BoundsContexts(t *testing.T) {
	gen := generation.NewMockGenerator("respuesta")
	s := NewSynthesizer(gen, nil)

	if _, err := s.Synthesize(context.Background(), &Input{
		Question:     "pregunta",
		LegalContext: strings.Repeat("x", 5000),
		UserContext:  strings.Repeat("y", 2000),
	}); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	prompt := gen.Requests()[0].Prompt
	if strings.Contains(prompt, strings.Repeat("x", 2001)) {
		t.Error("legal context not bounded")
	}
	if strings.Contains(prompt, strings.Repeat("y", 501)) {
		t.Error("user context not bounded")
	}
}

func TestBuildUserContext(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.RequesterProfile
		context string
		want    string
	}{
		{
			name: "nothing provided",
			want: "No se proporcionó contexto específico del usuario.",
		},
		{
			name:    "profile fields",
			profile: &models.RequesterProfile{CompanyType: "SAS", Industry: "tecnología", Employees: 12, Location: "Bogotá"},
			want:    "Tipo de empresa: SAS\nSector: tecnología\nNúmero de empleados: 12\nUbicación: Bogotá",
		},
		{
			name:    "free form context only",
			context: "empresa en etapa temprana",
			want:    "Contexto adicional: empresa en etapa temprana",
		},
		{
			name:    "empty profile falls back",
			profile: &models.RequesterProfile{},
			want:    "Contexto general para PyME colombiana.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildUserContext(tt.profile, tt.context); got != tt.want {
				t.Errorf("BuildUserContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildDocumentsContext(t *testing.T) {
	if got := BuildDocumentsContext(nil); got != "No se proporcionaron documentos específicos del usuario." {
		t.Errorf("empty docs context = %q", got)
	}

	docs := []*models.MatchedDocument{
		{
			Document: &models.UserDocument{Name: "contrato.pdf", FileType: "pdf"},
			Excerpt:  "contrato de trabajo a término fijo",
		},
		{
			Document: &models.UserDocument{Name: ""},
		},
	}
	got := BuildDocumentsContext(docs)
	if !strings.Contains(got, "Documento 1: contrato.pdf (Tipo: pdf)") {
		t.Errorf("missing first document header in %q", got)
	}
	if !strings.Contains(got, "Contenido relevante: contrato de trabajo") {
		t.Errorf("missing excerpt in %q", got)
	}
	if !strings.Contains(got, "Documento 2: Sin nombre") {
		t.Errorf("missing unnamed fallback in %q", got)
	}
}

func TestSystemPrompt_PerCategory(t *testing.T) {
	base := SystemPrompt(classify.CategoryGeneral)
	for _, cat := range []classify.Category{
		classify.CategoryFormation,
		classify.CategoryLabor,
		classify.CategoryTax,
		classify.CategoryContractual,
	} {
		got := SystemPrompt(cat)
		if got == base {
			t.Errorf("category %s should specialize the persona", cat)
		}
		if !strings.HasPrefix(got, base) {
			t.Errorf("specialized persona must extend the base: %q", got)
		}
	}
}
