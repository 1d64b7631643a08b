package ingest

import (
	"strings"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// NounPhrases greedily groups maximal runs of noun- or adjective-tagged
// tokens into space-joined phrases, in sentence order.
func NounPhrases(tagged []pos.TaggedToken) []string {
	phrases := []string{}
	var current []string

	for _, tt := range tagged {
		if tt.Tag.IsNounLike() || tt.Tag.IsAdjectiveLike() {
			current = append(current, tt.Word)
			continue
		}
		if len(current) > 0 {
			phrases = append(phrases, strings.Join(current, " "))
			current = current[:0]
		}
	}

	if len(current) > 0 {
		phrases = append(phrases, strings.Join(current, " "))
	}

	return phrases
}
