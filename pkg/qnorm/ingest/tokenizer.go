package ingest

import (
	"strings"
	"unicode"
)

// Tokenizer splits a cleaned sentence into word tokens. Runs of word
// characters form one token; every other non-space rune (in practice only
// '?' survives cleaning) becomes a token of its own.
type Tokenizer struct{}

// NewTokenizer creates a word tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the tokens of text in order. Case is preserved.
func (t *Tokenizer) Tokenize(text string) []string {
	tokens := []string{}
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case isWordRune(r):
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}

	// Don't forget the last token
	flush()

	return tokens
}
