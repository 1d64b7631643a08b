package query

import (
	"strings"

	"github.com/cognicore/qnorm/pkg/qnorm/ner"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// Reconstructor assembles the minimal intent query of a sentence: an
// action verb followed by its key nouns and adjectives.
type Reconstructor struct {
	actionVerbs   map[string]struct{}
	helperStops   map[string]struct{}
	defaultAction string
}

// NewReconstructor creates a reconstructor. helperStops lists words that
// never become key tokens; defaultAction is used when no lemma is an
// action verb.
func NewReconstructor(actionVerbs, helperStops []string, defaultAction string) *Reconstructor {
	return &Reconstructor{
		actionVerbs:   toSet(actionVerbs),
		helperStops:   toSet(helperStops),
		defaultAction: defaultAction,
	}
}

// Reconstruct builds the query string:
//  1. action = first lemma that is an action verb ("i" is read as "I")
//  2. key tokens = tagged words with a noun or adjective tag, minus helper
//     stopwords and the action itself, then the named entity texts
//  3. a key token contained in a different expanded string is replaced by
//     the first such string
//  4. result = lowercase(action + key tokens), space-joined and trimmed
//
// Step 3 is a plain substring test, so "on" is replaced by "ton" when
// "ton" was expanded.
func (r *Reconstructor) Reconstruct(lemmas []string, tagged []pos.TaggedToken, named []ner.NamedEntity, expanded []string) string {
	action := r.defaultAction
	for _, lemma := range lemmas {
		if strings.ToLower(lemma) == "i" {
			lemma = "I"
		}
		if _, ok := r.actionVerbs[lemma]; ok {
			action = lemma
			break
		}
	}

	var keys []string
	for _, tt := range tagged {
		if _, stop := r.helperStops[strings.ToLower(tt.Word)]; stop {
			continue
		}
		if tt.Word == action {
			continue
		}
		if tt.Tag.IsNounLike() || tt.Tag.IsAdjectiveLike() {
			keys = append(keys, tt.Word)
		}
	}
	for _, ne := range named {
		keys = append(keys, ne.Text)
	}

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, action)
	for _, key := range keys {
		parts = append(parts, substitute(key, expanded))
	}

	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}

func substitute(key string, expanded []string) string {
	for _, syn := range expanded {
		if syn != key && strings.Contains(syn, key) {
			return syn
		}
	}
	return key
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
