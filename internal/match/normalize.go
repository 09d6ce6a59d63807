package match

import (
	"strings"
	"unicode"
)

// typeSuffixes are trailing name tokens that rarely tell two records apart
// ("OrderRecord" and "Order" describe the same thing).
var typeSuffixes = []string{"record", "struct", "info", "data", "type", "ids", "id"}

// NormalizeTypeName folds a record spelling for fuzzy matching.
// The import path before the last "/" is dropped, the rest is tokenized on
// separators and CamelCase boundaries, lowercased and joined:
//
//	"structview/store.OrderItem" -> "storeorderitem"
//	"store.order_item"           -> "storeorderitem"
func NormalizeTypeName(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}

	return strings.Join(TokenizeIdent(s), "")
}

// StripTypeSuffix normalizes s and drops one trailing token from typeSuffixes.
// A name that is nothing but the suffix is kept whole.
func StripTypeSuffix(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}

	tokens := TokenizeIdent(s)

	if n := len(tokens); n > 1 {
		for _, suffix := range typeSuffixes {
			if tokens[n-1] == suffix {
				tokens = tokens[:n-1]
				break
			}
		}
	}

	return strings.Join(tokens, "")
}

// TokenizeIdent splits an identifier into lowercase tokens at separators
// ('_', '-', '.', ' ') and CamelCase boundaries. An acronym stays one token:
//
//	"HTTPHeader" -> ["http", "header"]
//	"store.OrderID" -> ["store", "order", "id"]
func TokenizeIdent(s string) []string {
	var (
		tokens []string
		start  = -1
	)

	runes := []rune(s)

	flush := func(end int) {
		if start >= 0 && end > start {
			tokens = append(tokens, strings.ToLower(string(runes[start:end])))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && boundary(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

// boundary reports whether a new token starts at runes[i], which is not the first rune.
func boundary(runes []rune, i int) bool {
	if i == 0 || !unicode.IsUpper(runes[i]) {
		return false
	}

	prev := runes[i-1]
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": the P of Parser ends the acronym.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
