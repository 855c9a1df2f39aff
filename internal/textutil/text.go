package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// CollapseWhitespace replaces every run of Unicode whitespace with a single
// space and trims both ends.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// IsDigits reports whether value is non-empty and consists only of ASCII digits.
func IsDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// Fold returns the case-folded, whitespace-collapsed form of value.
func Fold(value string) string {
	return cases.Fold().String(CollapseWhitespace(value))
}

// AlnumKey folds value and drops everything that is not a letter or digit,
// so "Required Power" and "required_power" share a key.
func AlnumKey(value string) string {
	folded := cases.Fold().String(value)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
