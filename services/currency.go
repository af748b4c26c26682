package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount in the es-AR display convention:
// currency symbol, period grouping, comma decimal, two fraction digits.
// FormatCurrency(1234.5) == "$ 1.234,50".
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	s := fmt.Sprintf("$ %s,%02d", grouped.String(), frac)
	if negative {
		return "-" + s
	}
	return s
}

// ParseCurrency converts display text back to an amount. Everything except
// digits, commas, and periods is stripped; when a comma is present the
// periods are grouping separators and the rightmost comma is the decimal
// point, otherwise the text is read as plain period-decimal. Anything left
// unparsable collapses to zero rather than signaling an error.
func ParseCurrency(text string) float64 {
	var cleaned strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			cleaned.WriteRune(r)
		}
	}

	normalized := cleaned.String()
	if i := strings.LastIndexByte(normalized, ','); i >= 0 {
		whole := strings.NewReplacer(".", "", ",", "").Replace(normalized[:i])
		frac := strings.NewReplacer(".", "", ",", "").Replace(normalized[i+1:])
		normalized = whole + "." + frac
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}
	return value
}

// CurrencyField reproduces the amount input's edit-mode behavior: the
// numeric value is authoritative, and the visible text switches between the
// formatted form and a raw comma-decimal editable form on focus/blur.
type CurrencyField struct {
	Value float64

	text    string
	focused bool
}

func NewCurrencyField(value float64) *CurrencyField {
	f := &CurrencyField{Value: value}
	f.text = f.displayText()
	return f
}

// Focus switches to the editable representation: the bare amount with a
// comma decimal and no grouping, or empty for zero.
func (f *CurrencyField) Focus() {
	f.focused = true
	if f.Value > 0 {
		f.text = strings.Replace(strconv.FormatFloat(f.Value, 'f', 2, 64), ".", ",", 1)
	} else {
		f.text = ""
	}
}

// SetText records typed input. While focused, characters outside the
// digit/comma/period set are dropped as they arrive.
func (f *CurrencyField) SetText(text string) {
	if !f.focused {
		f.text = text
		return
	}

	var sanitized strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			sanitized.WriteRune(r)
		}
	}
	f.text = sanitized.String()
}

// Blur parses whatever was typed (invalid input silently collapses to
// zero), adopts it as the value, and reverts to the formatted display.
func (f *CurrencyField) Blur() float64 {
	f.focused = false
	f.Value = ParseCurrency(f.text)
	f.text = f.displayText()
	return f.Value
}

// Text returns the currently displayed string.
func (f *CurrencyField) Text() string {
	return f.text
}

func (f *CurrencyField) displayText() string {
	if f.Value == 0 && !f.focused {
		return ""
	}
	return FormatCurrency(f.Value)
}
