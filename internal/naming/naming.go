// Package naming provides the identifier helpers shared by options, manifests and the CLI.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Camelize turns dash separated words into camel case: "a-b" becomes "aB".
// A dash followed by another dash is kept, so "a--b" becomes "a-B".
func Camelize(s string, upperFirst bool) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '-' && i+1 < len(runes) && isWord(runes[i+1]) {
			b.WriteRune(unicode.ToUpper(runes[i+1]))
			i++
			continue
		}
		b.WriteRune(r)
	}

	out := b.String()
	if upperFirst && out != "" {
		first, size := utf8.DecodeRuneInString(out)
		out = string(unicode.ToUpper(first)) + out[size:]
	}
	return out
}

// SnakeToCamel turns "dry_run" into "dryRun".
func SnakeToCamel(s string) string {
	return Camelize(strings.ReplaceAll(s, "_", "-"), false)
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
