package ingest

import (
	"fmt"

	"github.com/cognicore/qnorm/pkg/qnorm/internalerr"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// Pipeline orchestrates the front half of query processing:
// text → cleaning → sentence splitting → tokenization → tagging → tag overrides
type Pipeline struct {
	splitter  SentenceSplitter
	tokenizer *Tokenizer
	tagger    pos.Tagger
	overrider *pos.Overrider
}

// NewPipeline creates an ingestion pipeline with the given components
func NewPipeline(splitter SentenceSplitter, tokenizer *Tokenizer, tagger pos.Tagger, overrider *pos.Overrider) *Pipeline {
	return &Pipeline{
		splitter:  splitter,
		tokenizer: tokenizer,
		tagger:    tagger,
		overrider: overrider,
	}
}

// Sentence is one segmented sentence with its tokens and final tags.
// Tagged has the same length and order as Tokens.
type Sentence struct {
	Text   string
	Tokens []string
	Tagged []pos.TaggedToken
}

// ProcessedQuery is a query after ingestion.
type ProcessedQuery struct {
	Cleaned   string
	Sentences []Sentence
}

// Process runs a raw query through the ingestion pipeline. An empty or
// punctuation-only query yields zero sentences.
func (p *Pipeline) Process(query string) (ProcessedQuery, error) {
	// 1. Clean (lowercase, strip punctuation except '?')
	cleaned := Clean(query)
	out := ProcessedQuery{Cleaned: cleaned, Sentences: []Sentence{}}
	if cleaned == "" {
		return out, nil
	}

	// 2. Sentence segmentation
	texts, err := p.splitter.Split(cleaned)
	if err != nil {
		return out, fmt.Errorf("split sentences: %w", err)
	}

	for _, text := range texts {
		// 3. Tokenize
		tokens := p.tokenizer.Tokenize(text)
		if len(tokens) == 0 {
			continue
		}

		// 4. Base tags, then overrides
		base, err := p.tagger.Tag(tokens)
		if err != nil {
			return out, fmt.Errorf("tag %q: %w", text, err)
		}
		if len(base) != len(tokens) {
			return out, fmt.Errorf("tag %q: %d tags for %d tokens: %w", text, len(base), len(tokens), internalerr.ErrAlignment)
		}

		out.Sentences = append(out.Sentences, Sentence{
			Text:   text,
			Tokens: tokens,
			Tagged: p.overrider.Apply(base),
		})
	}

	return out, nil
}
