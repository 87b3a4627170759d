// Package strcase converts identifiers and free text between casings.
package strcase

import (
	"strings"
	"unicode"
)

// words splits s at case boundaries and at any rune that is not a letter or a
// digit. Acronyms stay together: "HTTPServer" gives "HTTP", "Server".
func words(s string) []string {
	runes := []rune(s)
	out := make([]string, 0, 4)
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}

		if start < 0 {
			start = i
			continue
		}

		prev := runes[i-1]
		if unicode.IsUpper(r) {
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
				start = i
			}
		}
	}
	flush(len(runes))

	return out
}

func join(s, sep string) string {
	w := words(s)
	for i := range w {
		w[i] = strings.ToLower(w[i])
	}
	return strings.Join(w, sep)
}

// ToLowerSnake converts s to snake_case: "FirstName" becomes "first_name".
func ToLowerSnake(s string) string {
	return join(s, "_")
}

// ToKebab converts s to kebab-case: "Logo Empresa" becomes "logo-empresa".
func ToKebab(s string) string {
	return join(s, "-")
}
