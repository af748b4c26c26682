package services

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$ 0,00"},
		{1, "$ 1,00"},
		{1234.5, "$ 1.234,50"},
		{1234.56, "$ 1.234,56"},
		{1000000, "$ 1.000.000,00"},
		{999.999, "$ 1.000,00"}, // rounds to cents
		{-1234.5, "-$ 1.234,50"},
		{0.01, "$ 0,01"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.expected {
			t.Errorf("FormatCurrency(%f) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
	}{
		{"$ 1.234,56", 1234.56},
		{"1.234,56", 1234.56},
		{"1234,56", 1234.56},
		{"1234.56", 1234.56},
		{"1500", 1500},
		{"1.500,50", 1500.5},
		{"$ 0,01", 0.01},
		{"", 0},
		{"abc", 0},
		{"$ ", 0},
		{"12,34,56", 1234.56}, // rightmost comma wins as decimal point
	}

	for _, tt := range tests {
		if got := ParseCurrency(tt.text); got != tt.expected {
			t.Errorf("ParseCurrency(%q) = %f, expected %f", tt.text, got, tt.expected)
		}
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	amounts := []float64{0.01, 1, 999.99, 1234.56, 1000000, 87654321.09}

	for _, amount := range amounts {
		formatted := FormatCurrency(amount)
		parsed := ParseCurrency(formatted)
		if math.Abs(parsed-amount) > 1e-9 {
			t.Errorf("Round trip of %f through %q gave %f", amount, formatted, parsed)
		}
	}
}

func TestCurrencyFieldFocusBlur(t *testing.T) {
	field := NewCurrencyField(1234.5)

	if field.Text() != "$ 1.234,50" {
		t.Errorf("Expected formatted display, got %q", field.Text())
	}

	field.Focus()
	if field.Text() != "1234,50" {
		t.Errorf("Expected raw editable form on focus, got %q", field.Text())
	}

	field.SetText("2500,75")
	if got := field.Blur(); got != 2500.75 {
		t.Errorf("Expected blur to adopt 2500.75, got %f", got)
	}
	if field.Text() != "$ 2.500,75" {
		t.Errorf("Expected formatted display after blur, got %q", field.Text())
	}
}

func TestCurrencyFieldZeroAndInvalid(t *testing.T) {
	field := NewCurrencyField(0)

	if field.Text() != "" {
		t.Errorf("Expected empty display for zero value, got %q", field.Text())
	}

	field.Focus()
	if field.Text() != "" {
		t.Errorf("Expected empty editable text for zero value, got %q", field.Text())
	}

	// Typed characters outside the numeric set are dropped as they arrive
	field.SetText("12a,5x0")
	if field.Text() != "12,50" {
		t.Errorf("Expected sanitized input, got %q", field.Text())
	}

	if got := field.Blur(); got != 12.5 {
		t.Errorf("Expected 12.5 after blur, got %f", got)
	}

	field.Focus()
	field.SetText(",,..")
	if got := field.Blur(); got != 0 {
		t.Errorf("Expected unparsable input to collapse to zero, got %f", got)
	}
	if field.Text() != "" {
		t.Errorf("Expected empty display after collapsing to zero, got %q", field.Text())
	}
}
