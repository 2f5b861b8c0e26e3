package retrieval

import (
	"strings"
	"testing"
)

func TestPreprocessor_Preprocess(t *testing.T) {
	p := NewPreprocessor(2)
	formation := DefaultConfig().Categories["formation"]

	tests := []struct {
		name     string
		question string
		cfg      CategoryConfig
		contains []string
		excludes []string
	}{
		{
			name:     "expands abbreviations",
			question: "¿Cómo constituyo una SAS en Colombia?",
			cfg:      formation,
			contains: []string{"sociedad por acciones simplificada"},
			excludes: []string{"sas"},
		},
		{
			name:     "injects leading boost keywords",
			question: "quiero abrir mi negocio en colombia",
			cfg:      formation,
			contains: []string{"sas", "empresa"},
		},
		{
			name:     "appends jurisdiction marker when absent",
			question: "requisitos del contrato de trabajo",
			cfg:      CategoryConfig{},
			contains: []string{"colombia legislación colombiana"},
		},
		{
			name:     "keeps jurisdiction marker out when present",
			question: "requisitos del contrato de trabajo en colombia",
			cfg:      CategoryConfig{},
			excludes: []string{"legislación colombiana"},
		},
		{
			name:     "lowercases and trims",
			question: "  ¿Qué Es El IVA?  ",
			cfg:      CategoryConfig{},
			contains: []string{"impuesto al valor agregado"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Preprocess(tt.question, tt.cfg)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Preprocess(%q) = %q, missing %q", tt.question, got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Preprocess(%q) = %q, should not contain %q", tt.question, got, unwanted)
				}
			}
		})
	}
}

func TestPreprocessor_InjectLimit(t *testing.T) {
	p := NewPreprocessor(2)
	cfg := CategoryConfig{BoostKeywords: []string{"alpha", "beta", "gamma", "delta"}}

	got := p.Preprocess("pregunta sobre colombia", cfg)
	if !strings.Contains(got, "alpha") || !strings.Contains(got, "beta") {
		t.Errorf("expected first two keywords injected, got %q", got)
	}
	if strings.Contains(got, "gamma") || strings.Contains(got, "delta") {
		t.Errorf("keywords beyond the inject limit must not appear, got %q", got)
	}
}

func TestPreprocessor_InjectDisabled(t *testing.T) {
	p := NewPreprocessor(0)
	cfg := CategoryConfig{BoostKeywords: []string{"alpha"}}

	got := p.Preprocess("pregunta sobre colombia", cfg)
	if strings.Contains(got, "alpha") {
		t.Errorf("injection disabled, got %q", got)
	}
}

func TestPreprocessor_Deterministic(t *testing.T) {
	p := NewPreprocessor(2)
	cfg := DefaultConfig().Categories["tax"]

	first := p.Preprocess("¿Cuándo declaro renta?", cfg)
	for i := 0; i < 5; i++ {
		if got := p.Preprocess("¿Cuándo declaro renta?", cfg); got != first {
			t.Fatalf("run %d produced %q, want %q", i, got, first)
		}
	}
}
