package calculator

import "testing"

func TestCalculateBasicArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2 + 2", "4"},
		{"10 - 3", "7"},
		{"6 * 7", "42"},
		{"8 / 2", "4"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"-5 + 3", "-2"},
		{"2^10", "1,024"},
		{"2^3^2", "512"}, // right associative
		{"3 × 4", "12"},
		{"12 ÷ 4", "3"},
	}

	for _, tt := range tests {
		answer, ok := Calculate(tt.expr)
		if !ok {
			t.Errorf("%q: expected math detection", tt.expr)
			continue
		}
		if answer.Result != tt.want {
			t.Errorf("%q = %q, want %q", tt.expr, answer.Result, tt.want)
		}
	}
}

func TestCalculateFunctions(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"sqrt(16)", "4"},
		{"√(16)", "4"},
		{"abs(-5)", "5"},
		{"ceil(4.2)", "5"},
		{"floor(4.8)", "4"},
		{"round(4.6)", "5"},
		{"log(100)", "2"},
		{"ln(1)", "0"},
	}

	for _, tt := range tests {
		answer, ok := Calculate(tt.expr)
		if !ok {
			t.Errorf("%q: expected math detection", tt.expr)
			continue
		}
		if answer.Result != tt.want {
			t.Errorf("%q = %q, want %q", tt.expr, answer.Result, tt.want)
		}
	}
}

func TestCalculateConstants(t *testing.T) {
	answer, ok := Calculate("π * 2")
	if !ok {
		t.Fatal("expected math detection for π * 2")
	}
	if answer.Result != "6.2831853072" {
		t.Errorf("π * 2 = %q", answer.Result)
	}
}

func TestCalculateNotMath(t *testing.T) {
	for _, query := range []string{"", "cats", "golang tutorial", "weather in oslo"} {
		if _, ok := Calculate(query); ok {
			t.Errorf("%q should not be treated as math", query)
		}
	}
}

func TestCalculateInvalidExpression(t *testing.T) {
	// Looks like math but does not parse: still detected, invalid result
	for _, query := range []string{"2 +", "(3 * 4", "5 5 5"} {
		answer, ok := Calculate(query)
		if !ok {
			t.Errorf("%q: expected math detection", query)
			continue
		}
		if answer.Result != "Invalid expression" {
			t.Errorf("%q = %q, want invalid", query, answer.Result)
		}
	}
}

func TestCalculateDivisionByZero(t *testing.T) {
	answer, ok := Calculate("1 / 0")
	if !ok {
		t.Fatal("expected math detection")
	}
	if answer.Result != "Invalid expression" {
		t.Errorf("1 / 0 = %q, want invalid", answer.Result)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{0.5, "0.5"},
		{1e13, "1.000000e+13"},
		{0.0001, "1.000000e-04"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatResult(tt.value); got != tt.want {
			t.Errorf("formatResult(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestSuggestions(t *testing.T) {
	if got := Suggestions(""); len(got) != 5 {
		t.Errorf("expected 5 default suggestions, got %d", len(got))
	}

	got := Suggestions("sqrt")
	if len(got) != 1 || got[0] != "sqrt(16)" {
		t.Errorf("unexpected suggestions for sqrt: %v", got)
	}

	if got := Suggestions("xyzzy"); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}
