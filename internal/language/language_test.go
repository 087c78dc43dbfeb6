package language

import (
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"es", "es"},
		{"EU", "eu"},
		// 3-letter codes convert
		{"spa", "es"},
		{"eus", "eu"},
		{"baq", "eu"},
		{"cat", "ca"},
		{"glg", "gl"},
		{"fre", "fr"},
		{"ger", "de"},
		// Word forms
		{"Castellano", "es"},
		{"euskera", "eu"},
		{"GALEGO", "gl"},
		{"english", "en"},
		// Unknown 2-letter passes through
		{"xy", "xy"},
		// Unknown 3-letter returns empty
		{"xyz", ""},
		// Empty
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToISO2(tt.input)
			if result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"es", "Spanish"},
		{"eus", "Basque"},
		{"catalan", "Catalan"},
		{"", "Unknown"},
		{"  ", "Unknown"},
		{"xx", "XX"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSame(t *testing.T) {
	if !Same("spa", "es") || !Same("Euskera", "eu") {
		t.Fatal("expected aliases to match")
	}
	if Same("es", "en") || Same("", "") || Same("xyz", "xyz") {
		t.Fatal("expected mismatches")
	}
}
