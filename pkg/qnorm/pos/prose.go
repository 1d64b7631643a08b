package pos

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseTagger tags tokens with the prose averaged-perceptron model.
type ProseTagger struct{}

// NewProseTagger creates a tagger backed by prose.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag runs prose over the space-joined tokens and maps its tags back onto
// the caller's tokens.
func (p *ProseTagger) Tag(tokens []string) ([]TaggedToken, error) {
	if len(tokens) == 0 {
		return []TaggedToken{}, nil
	}

	doc, err := prose.NewDocument(
		strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose tag: %w", err)
	}

	parsed := doc.Tokens()
	pieces := make([]piece, len(parsed))
	for i, tok := range parsed {
		pieces[i] = piece{text: tok.Text, tag: Tag(tok.Tag)}
	}
	return align(tokens, pieces), nil
}

// piece is one token as segmented by the underlying tagger.
type piece struct {
	text string
	tag  Tag
}

// align maps tagger pieces onto our tokens. A token split into several
// pieces takes the tag of its first piece; tokens left without pieces
// fall back to NN.
func align(tokens []string, pieces []piece) []TaggedToken {
	out := make([]TaggedToken, len(tokens))
	j := 0
	for i, tok := range tokens {
		tag := Noun
		consumed := 0
		for j < len(pieces) && consumed < len(tok) {
			if consumed == 0 {
				tag = pieces[j].tag
			}
			consumed += len(pieces[j].text)
			j++
		}
		out[i] = TaggedToken{Word: tok, Tag: tag}
	}
	return out
}
