package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Clean lowercases a raw query and strips everything except word
// characters, whitespace and '?'. Input is NFC-normalized first so that
// decomposed accents survive as letters.
func Clean(query string) string {
	text := strings.TrimSpace(cases.Lower(language.Und).String(norm.NFC.String(query)))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isWordRune(r) || unicode.IsSpace(r) || r == '?' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}
