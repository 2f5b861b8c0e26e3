package docmatch

import (
	"strings"
	"testing"

	"github.com/andeslegal/consulta/internal/models"
)

func readyDoc(name, content string) *models.UserDocument {
	return &models.UserDocument{
		Name:    name,
		Content: content,
		Status:  models.DocumentStatusReady,
	}
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher(nil)

	docs := []*models.UserDocument{
		readyDoc("contrato_laboral.pdf", "contrato de trabajo a término indefinido con periodo de prueba"),
		readyDoc("estatutos.pdf", "estatutos de la sociedad por acciones simplificada"),
		readyDoc("factura_123.pdf", "factura de venta por servicios prestados"),
	}

	matched := m.Match("¿Puedo terminar el contrato de trabajo durante el periodo de prueba?", docs)

	if len(matched) == 0 {
		t.Fatal("expected at least one match")
	}
	if matched[0].Document.Name != "contrato_laboral.pdf" {
		t.Errorf("top match = %q, want contrato_laboral.pdf", matched[0].Document.Name)
	}
	for _, md := range matched {
		if md.MatchScore <= 0 {
			t.Errorf("document %q kept with score %d", md.Document.Name, md.MatchScore)
		}
	}
}

func TestMatcher_NoOverlap(t *testing.T) {
	m := NewMatcher(nil)
	docs := []*models.UserDocument{
		readyDoc("factura.pdf", "factura de venta"),
	}

	if matched := m.Match("¿Cuándo debo declarar renta?", docs); len(matched) != 0 {
		t.Errorf("expected no matches, got %d", len(matched))
	}
}

func TestMatcher_SkipsNotReady(t *testing.T) {
	m := NewMatcher(nil)
	docs := []*models.UserDocument{
		{Name: "contrato.pdf", Content: "contrato de trabajo", Status: models.DocumentStatusProcessing},
		{Name: "contrato2.pdf", Content: "contrato de trabajo", Status: models.DocumentStatusFailed},
	}

	if matched := m.Match("dudas sobre mi contrato de trabajo", docs); len(matched) != 0 {
		t.Errorf("non-ready documents must not match, got %d", len(matched))
	}
}

func TestMatcher_CapsMatches(t *testing.T) {
	m := NewMatcher(nil)
	var docs []*models.UserDocument
	for i := 0; i < 6; i++ {
		docs = append(docs, readyDoc("contrato.pdf", "contrato de trabajo"))
	}

	matched := m.Match("preguntas sobre el contrato de trabajo", docs)
	if len(matched) != DefaultMaxMatches {
		t.Errorf("kept %d matches, want %d", len(matched), DefaultMaxMatches)
	}
}

func TestMatcher_StableOrderOnTies(t *testing.T) {
	m := NewMatcher(nil)
	docs := []*models.UserDocument{
		readyDoc("primero.pdf", "contrato"),
		readyDoc("segundo.pdf", "contrato"),
	}

	matched := m.Match("revisar contrato", docs)
	if len(matched) != 2 {
		t.Fatalf("matched %d, want 2", len(matched))
	}
	if matched[0].Document.Name != "primero.pdf" {
		t.Errorf("ties must keep input order, top = %q", matched[0].Document.Name)
	}
}

func TestMatcher_ExcerptBounded(t *testing.T) {
	m := NewMatcher(nil)
	long := strings.Repeat("contrato de arrendamiento ", 100)
	docs := []*models.UserDocument{readyDoc("arriendo.pdf", long)}

	matched := m.Match("dudas sobre el contrato de arrendamiento", docs)
	if len(matched) != 1 {
		t.Fatalf("matched %d, want 1", len(matched))
	}
	if len(matched[0].Excerpt) > DefaultExcerptChars+len("...") {
		t.Errorf("excerpt length %d exceeds cap", len(matched[0].Excerpt))
	}
}

func TestMatcher_ShortTokensIgnored(t *testing.T) {
	m := NewMatcher(nil)
	docs := []*models.UserDocument{readyDoc("doc.pdf", "el la de un una y o")}

	if matched := m.Match("el la de un", docs); len(matched) != 0 {
		t.Errorf("short tokens must not produce matches, got %d", len(matched))
	}
}
