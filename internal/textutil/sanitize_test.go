package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ep01", "ep01"},
		{"Episodio 01 - Acción", "episodio_01_-_accion"},
		{"  Capítulo  Ñ ", "capitulo_n"},
		{"__x__", "x"},
		{"???", "script"},
		{"", "script"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeToken(tt.input); got != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
