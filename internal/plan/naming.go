package plan

import (
	"strings"
	"unicode"
)

// toSnake converts an identifier to snake_case ("OrderItem" -> "order_item",
// "HTTPHeader" -> "http_header").
func toSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder

	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_'
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])

			if prevLower || nextLower {
				b.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		b.WriteRune(r)
	}

	return b.String()
}

// packageNameFor derives a package name from a directory base name.
func packageNameFor(base string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(base) {
		if r == '_' || unicode.IsLetter(r) || (b.Len() > 0 && unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "views"
	}

	return b.String()
}
