package classify

import (
	"reflect"
	"testing"
)

func TestClassifier_Category(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		question string
		want     Category
	}{
		{"formation by sas", "¿Cómo constituyo una SAS?", CategoryFormation},
		{"formation by sociedad", "quiero crear una sociedad con mi socio", CategoryFormation},
		{"labor by empleado", "¿qué prestaciones debo pagar a un empleado?", CategoryLabor},
		{"labor beats contractual on contrato de trabajo", "dudas sobre el contrato de trabajo", CategoryLabor},
		{"tax by dian", "¿qué sanciones aplica la DIAN?", CategoryTax},
		{"tax by impuesto", "¿cuándo pago el impuesto de renta?", CategoryTax},
		{"contractual by clausula", "¿qué cláusulas debe tener mi acuerdo?", CategoryContractual},
		{"contractual by bare contrato", "¿cómo termino un contrato comercial?", CategoryContractual},
		{"general fallback", "hola, tengo una duda", CategoryGeneral},
		{"empty input", "", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.question)
			if got.Category != tt.want {
				t.Errorf("Classify(%q).Category = %v, want %v", tt.question, got.Category, tt.want)
			}
		})
	}
}

func TestClassifier_QueryType(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		question string
		want     QueryType
	}{
		{"procedure by como", "¿Cómo constituyo una SAS?", QueryTypeProcedure},
		{"procedure by pasos", "pasos para liquidar un empleado", QueryTypeProcedure},
		{"definition", "¿qué es el régimen simple?", QueryTypeDefinition},
		{"requirements", "¿qué requisitos piden para registrar la marca?", QueryTypeRequirements},
		{"general fallback", "dudas sobre renta", QueryTypeGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.question)
			if got.QueryType != tt.want {
				t.Errorf("Classify(%q).QueryType = %v, want %v", tt.question, got.QueryType, tt.want)
			}
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	c := NewClassifier()
	question := "¿Cómo constituyo una SAS y qué papeles pide la Cámara de Comercio?"

	first := c.Classify(question)
	for i := 0; i < 5; i++ {
		got := c.Classify(question)
		if got.Category != first.Category || got.QueryType != first.QueryType {
			t.Fatalf("classification changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestClassifier_Entities(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("¿La DIAN exige algo al constituir una SAS ante la Cámara de Comercio?")
	want := []string{"DIAN", "SAS", "Cámara de Comercio"}
	if !reflect.DeepEqual(got.Entities, want) {
		t.Errorf("Entities = %v, want %v", got.Entities, want)
	}
}

func TestClassifier_Complexity(t *testing.T) {
	c := NewClassifier()

	if got := c.Classify("¿Qué es el IVA?").Complexity; got != ComplexityLow {
		t.Errorf("short question complexity = %v, want low", got)
	}
	long := "¿Cómo constituyo una SAS ante la Cámara de Comercio, qué papeles exige la DIAN para el IVA y cuánto cuesta todo el trámite completo este año?"
	if got := c.Classify(long).Complexity; got != ComplexityHigh {
		t.Errorf("long question complexity = %v, want high", got)
	}
}

func TestParseCategory_RoundTrip(t *testing.T) {
	for _, cat := range Categories() {
		if got := ParseCategory(cat.String()); got != cat {
			t.Errorf("ParseCategory(%q) = %v, want %v", cat.String(), got, cat)
		}
	}
	if got := ParseCategory("nonsense"); got != CategoryGeneral {
		t.Errorf("ParseCategory(unknown) = %v, want general", got)
	}
}
