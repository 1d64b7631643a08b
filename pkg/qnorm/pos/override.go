package pos

import (
	"regexp"
	"strings"
	"unicode"
)

var numberPattern = regexp.MustCompile(`^\$?\d+(,\d{3})*(\.\d+)?$`)

// Overrider refines base tagger output with pronoun, number and
// question-context rules.
type Overrider struct {
	pronouns      map[string]struct{}
	questionWords map[string]struct{}
}

// NewOverrider creates an overrider for the given pronoun and question word sets.
func NewOverrider(pronouns, questionWords []string) *Overrider {
	return &Overrider{
		pronouns:      toSet(pronouns),
		questionWords: toSet(questionWords),
	}
}

// Apply returns a new tagged sequence of the same length. Per token, first
// match wins:
//  1. pronoun set member -> PRP
//  2. all digits once ',' and '.' are removed, or a currency/number literal -> CD
//  3. previous token is a question word and the base tag is noun-like -> NN-Q
//  4. base tag unchanged
func (o *Overrider) Apply(base []TaggedToken) []TaggedToken {
	out := make([]TaggedToken, len(base))
	for i, tt := range base {
		lower := strings.ToLower(tt.Word)
		switch {
		case has(o.pronouns, lower):
			out[i] = TaggedToken{Word: tt.Word, Tag: Pronoun}
		case isNumeric(tt.Word):
			out[i] = TaggedToken{Word: tt.Word, Tag: Number}
		case i > 0 && has(o.questionWords, strings.ToLower(base[i-1].Word)) && tt.Tag.IsNounLike():
			out[i] = TaggedToken{Word: tt.Word, Tag: QuestionNoun}
		default:
			out[i] = tt
		}
	}
	return out
}

func isNumeric(word string) bool {
	stripped := strings.NewReplacer(",", "", ".", "").Replace(word)
	if stripped != "" && allDigits(stripped) {
		return true
	}
	return numberPattern.MatchString(word)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
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
