// Package lemma maps inflected words to dictionary base forms using the
// exception lists and suffix-detachment rules of the lexical store.
package lemma

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
)

type rule struct {
	suffix, replacement string
}

var rules = map[pos.Category][]rule{
	pos.CategoryNoun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	pos.CategoryVerb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	pos.CategoryAdjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
	pos.CategoryAdverb: {},
}

// Lemmatizer looks up base forms in a lexical store.
type Lemmatizer struct {
	store store.Store
}

// New creates a lemmatizer over st.
func New(st store.Store) *Lemmatizer {
	return &Lemmatizer{store: st}
}

// Lemmatize returns the base form of word in the given category. When
// the store knows no base form the word is returned unchanged; words of
// CategoryNone are never looked up.
func (l *Lemmatizer) Lemmatize(ctx context.Context, word string, cat pos.Category) (string, error) {
	if cat == pos.CategoryNone || word == "" {
		return word, nil
	}
	candidates, err := l.morphy(ctx, strings.ToLower(word), cat)
	if err != nil {
		return "", fmt.Errorf("lemmatize %q/%s: %w", word, cat, err)
	}
	if len(candidates) == 0 {
		return word, nil
	}
	shortest := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) < len(shortest) {
			shortest = c
		}
	}
	return shortest, nil
}

// LemmatizeTokens lemmatizes each token using the category of its own
// tag. Proper nouns, numbers and pronouns pass through unchanged. The
// result has the same length as tagged.
func (l *Lemmatizer) LemmatizeTokens(ctx context.Context, tagged []pos.TaggedToken) ([]string, error) {
	out := make([]string, len(tagged))
	for i, tt := range tagged {
		switch {
		case tt.Tag.IsProperNoun(), tt.Tag == pos.Number, tt.Tag == pos.Pronoun:
			out[i] = tt.Word
			continue
		}
		lemma, err := l.Lemmatize(ctx, tt.Word, tt.Tag.Category())
		if err != nil {
			return nil, err
		}
		out[i] = lemma
	}
	return out, nil
}

// morphy returns every known base form of form. An exception entry
// short-circuits the rules. Otherwise detachment is applied repeatedly
// until some candidate is a known lemma.
func (l *Lemmatizer) morphy(ctx context.Context, form string, cat pos.Category) ([]string, error) {
	bases, err := l.store.Exceptions(ctx, form, cat)
	if err != nil {
		return nil, err
	}
	if len(bases) > 0 {
		return l.known(ctx, append([]string{form}, bases...), cat)
	}

	forms := detach([]string{form}, rules[cat])
	results, err := l.known(ctx, append([]string{form}, forms...), cat)
	if err != nil || len(results) > 0 {
		return results, err
	}

	for len(forms) > 0 {
		forms = detach(forms, rules[cat])
		results, err := l.known(ctx, forms, cat)
		if err != nil || len(results) > 0 {
			return results, err
		}
	}
	return nil, nil
}

func detach(forms []string, rs []rule) []string {
	var out []string
	for _, f := range forms {
		for _, r := range rs {
			if strings.HasSuffix(f, r.suffix) {
				out = append(out, strings.TrimSuffix(f, r.suffix)+r.replacement)
			}
		}
	}
	return out
}

// known keeps the forms that are lemmas of cat, without duplicates.
func (l *Lemmatizer) known(ctx context.Context, forms []string, cat pos.Category) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(forms))
	for _, f := range forms {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		ok, err := l.store.HasLemma(ctx, f, cat)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}
