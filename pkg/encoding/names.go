// Package encoding provides text utilities for object and material names
// that end up in file names and compiler scripts.
package encoding

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldASCII strips diacritics so accented Latin letters become their ASCII
// base letter ("Café" -> "Cafe"). Returns the original string if the
// transform fails.
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// SanitizeName turns an object name into a file-safe name. Letters are
// folded to ASCII first; anything other than ASCII letters, digits, '_' and
// '-' becomes '_'. The result is empty only when s is empty.
func SanitizeName(s string) string {
	s = FoldASCII(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isNameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

// NormalizePath converts backslashes to forward slashes and drops a
// trailing slash. Compiler scripts always use forward slashes.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// EqualFold reports whether two names match case-insensitively after ASCII
// folding.
func EqualFold(a, b string) bool {
	return strings.EqualFold(FoldASCII(a), FoldASCII(b))
}
