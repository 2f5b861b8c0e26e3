package utils

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"shorter than max", "hola", 10, "hola"},
		{"exactly max", "hola", 4, "hola"},
		{"truncated", "hola mundo", 4, "hola..."},
		{"zero max returns unchanged", "hola", 0, "hola"},
		{"negative max returns unchanged", "hola", -1, "hola"},
		// "ó" is two bytes; the cut backs up to the rune start.
		{"cut inside a multibyte rune", "constitución", 11, "constituci..."},
		{"cut after a multibyte rune", "constitución", 12, "constitució..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate() = %q is not valid UTF-8", got)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		minLen int
		want   []string
	}{
		{"drops short words", "como hago un contrato", 3, []string{"como", "hago", "contrato"}},
		{"lowercases", "Contrato LABORAL", 3, []string{"contrato", "laboral"}},
		{"strips punctuation", "¿contrato?, cláusula.", 3, []string{"contrato", "cláusula"}},
		{"empty input", "", 3, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.s, tt.minLen); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	if got := Clamp01(1.5); got != 1.0 {
		t.Errorf("Clamp01(1.5) = %v, want 1.0", got)
	}
	if got := Clamp01(-0.2); got != 0.0 {
		t.Errorf("Clamp01(-0.2) = %v, want 0.0", got)
	}
	if got := Clamp01(0.42); got != 0.42 {
		t.Errorf("Clamp01(0.42) = %v, want 0.42", got)
	}
}
