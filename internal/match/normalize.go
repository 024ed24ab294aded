package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent case-folds an identifier and strips separators
// ('_', '-', spaces), so "Dispose_Method" and "disposeMethod" compare equal.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// SimpleName returns the last dotted segment of a qualified name.
func SimpleName(qualified string) string {
	qualified = strings.TrimPrefix(qualified, "global::")
	if idx := strings.LastIndex(qualified, "."); idx >= 0 {
		return qualified[idx+1:]
	}

	return qualified
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
