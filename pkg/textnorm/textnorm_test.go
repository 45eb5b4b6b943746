package textnorm

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Hello World  ", "hello world"},
		{"MIXED Case", "mixed case"},
		{"", ""},
		{"   ", ""},
		{"café", "café"}, // decomposed e + acute composes to é
		{"already lower", "already lower"},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  Hello World  ", "café STRASSE", "don't PRE-Clear", ""}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"how do i pre clear a trade?", []string{"how", "do", "i", "pre", "clear", "a", "trade"}},
		{"don't stop", []string{"don't", "stop"}},
		{"pre-clear trades", []string{"pre-clear", "trades"}},
		{"a-b-c", []string{"a-b", "c"}}, // only one internal joiner per token
		{"!!! ???", nil},
		{"", nil},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"v2 rollout 2024", []string{"v2", "rollout", "2024"}},
	}

	for _, tc := range tests {
		got := Tokenize(tc.input)
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestTokenizeNoWhitespaceOrEmpty(t *testing.T) {
	for _, tok := range Tokenize("  The QUICK,   brown-ish fox's;  den  ") {
		if tok == "" {
			t.Error("empty token produced")
		}
		if strings.ContainsAny(tok, " \t\n") {
			t.Errorf("token %q contains whitespace", tok)
		}
	}
}
