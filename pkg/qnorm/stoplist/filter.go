package stoplist

import (
	"strings"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// Filter removes stopwords from a tagged sentence while keeping tokens
// that carry query context.
type Filter struct {
	stops         *Manager
	questionWords map[string]struct{}
	negators      map[string]struct{}
}

// NewFilter creates a context-aware stopword filter.
func NewFilter(stops *Manager, questionWords, negators []string) *Filter {
	return &Filter{
		stops:         stops,
		questionWords: toSet(questionWords),
		negators:      toSet(negators),
	}
}

// Apply returns the kept tokens in their original order. A token is kept
// outright when it is a question word, a number, a proper noun, follows a
// question word in the unfiltered sentence, is verb/adjective/adverb-like,
// or is a negator. Any other token is dropped only if it is a stopword.
// The input slice is not modified.
func (f *Filter) Apply(tagged []pos.TaggedToken) []pos.TaggedToken {
	kept := make([]pos.TaggedToken, 0, len(tagged))
	for i, tt := range tagged {
		if f.keep(tagged, i) || !f.stops.IsStop(tt.Word) {
			kept = append(kept, tt)
		}
	}
	return kept
}

func (f *Filter) keep(tagged []pos.TaggedToken, i int) bool {
	tt := tagged[i]
	lower := strings.ToLower(tt.Word)
	switch {
	case has(f.questionWords, lower):
		return true
	case tt.Tag == pos.Number, tt.Tag.IsProperNoun():
		return true
	case i > 0 && has(f.questionWords, strings.ToLower(tagged[i-1].Word)):
		return true
	case tt.Tag.IsVerbLike(), tt.Tag.IsAdjectiveLike(), tt.Tag.IsAdverbLike():
		return true
	case has(f.negators, lower):
		return true
	}
	return false
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}
