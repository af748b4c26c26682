package services

import (
	"strings"
	"unicode"
)

// PasswordAssessment is the result of scoring a candidate password. It is
// never persisted.
type PasswordAssessment struct {
	IsValid     bool     `json:"isValid"`
	Score       int      `json:"score"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

const baseSymbols = "@$!%*?&.,#_-"
const bonusSymbols = "!@#$%^&*(),.?\":{}|<>"

type passwordCriterion struct {
	test       func(string) bool
	message    string
	suggestion string
}

// The five base criteria, each worth 20 points. Validity requires all five;
// bonus points never affect validity.
var passwordCriteria = []passwordCriterion{
	{
		test:       func(p string) bool { return len([]rune(p)) >= 8 },
		message:    "Password must be at least 8 characters long",
		suggestion: "Try using at least 8 characters",
	},
	{
		test:       func(p string) bool { return strings.IndexFunc(p, unicode.IsLower) >= 0 },
		message:    "Must contain at least one lowercase letter (a-z)",
		suggestion: "Add lowercase letters",
	},
	{
		test:       func(p string) bool { return strings.IndexFunc(p, unicode.IsUpper) >= 0 },
		message:    "Must contain at least one uppercase letter (A-Z)",
		suggestion: "Add uppercase letters",
	},
	{
		test:       func(p string) bool { return strings.IndexFunc(p, unicode.IsDigit) >= 0 },
		message:    "Must contain at least one number (0-9)",
		suggestion: "Add numbers",
	},
	{
		test:       func(p string) bool { return strings.ContainsAny(p, baseSymbols) },
		message:    "Must contain at least one symbol (" + baseSymbols + ")",
		suggestion: "Add symbols like @, !, %",
	},
}

// ValidatePassword scores a candidate password: 20 points per satisfied
// base criterion, plus capped bonuses for extra length and symbols.
func ValidatePassword(password string) PasswordAssessment {
	var errors []string
	var suggestions []string
	score := 0

	for _, criterion := range passwordCriteria {
		if criterion.test(password) {
			score += 20
		} else {
			errors = append(errors, criterion.message)
			suggestions = append(suggestions, criterion.suggestion)
		}
	}

	length := len([]rune(password))
	if length >= 12 {
		score += 10
	}
	if strings.ContainsAny(password, bonusSymbols) {
		score += 5
	}
	if length >= 16 {
		score += 5
	}
	if score > 100 {
		score = 100
	}

	if score < 60 {
		suggestions = append(suggestions,
			"Consider using a phrase with spaces and numbers",
			"Avoid common words or personal information")
	}

	return PasswordAssessment{
		IsValid:     len(errors) == 0,
		Score:       score,
		Errors:      errors,
		Suggestions: suggestions,
	}
}

// PasswordStrengthLabel maps a score onto one of five strength bands.
func PasswordStrengthLabel(score int) string {
	switch {
	case score >= 80:
		return "very strong"
	case score >= 60:
		return "strong"
	case score >= 40:
		return "medium"
	case score >= 20:
		return "weak"
	default:
		return "very weak"
	}
}

// PasswordStrengthColor returns the indicator color for a score band.
func PasswordStrengthColor(score int) string {
	switch {
	case score >= 80:
		return "green"
	case score >= 60:
		return "yellow"
	case score >= 40:
		return "orange"
	default:
		return "red"
	}
}
