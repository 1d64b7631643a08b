// Package pos models Penn Treebank part-of-speech tags and the rules that
// refine a base tagger's output before the rest of the pipeline sees it.
package pos

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Tag is a Penn Treebank part-of-speech tag, or one of the synthetic tags
// produced by the Overrider.
type Tag string

// Tags the pipeline treats specially.
const (
	Noun             Tag = "NN"
	NounPlural       Tag = "NNS"
	ProperNoun       Tag = "NNP"
	ProperNounPlural Tag = "NNPS"
	Pronoun          Tag = "PRP"
	Number           Tag = "CD"
	Determiner       Tag = "DT"
	Conjunction      Tag = "CC"
	Interjection     Tag = "UH"
	Preposition      Tag = "IN"
	Modal            Tag = "MD"
	Adjective        Tag = "JJ"
	Verb             Tag = "VB"
	Adverb           Tag = "RB"
	Period           Tag = "."
	Comma            Tag = ","
	Colon            Tag = ":"

	// QuestionNoun marks a noun directly following a question word.
	QuestionNoun Tag = "NN-Q"
)

// IsNounLike reports whether the tag is in the noun family (NN, NNS, NNP, NN-Q, ...).
func (t Tag) IsNounLike() bool { return strings.HasPrefix(string(t), "NN") }

// IsAdjectiveLike reports whether the tag is in the adjective family.
func (t Tag) IsAdjectiveLike() bool { return strings.HasPrefix(string(t), "JJ") }

// IsVerbLike reports whether the tag is in the verb family.
func (t Tag) IsVerbLike() bool { return strings.HasPrefix(string(t), "VB") }

// IsAdverbLike reports whether the tag is in the adverb family.
func (t Tag) IsAdverbLike() bool { return strings.HasPrefix(string(t), "RB") }

// IsProperNoun reports whether the tag is NNP or NNPS.
func (t Tag) IsProperNoun() bool { return t == ProperNoun || t == ProperNounPlural }

// Category maps the tag onto the lexical database's part-of-speech
// categories. Tags outside the four open classes map to CategoryNone.
func (t Tag) Category() Category {
	if t == "" {
		return CategoryNone
	}
	switch t[0] {
	case 'J':
		return CategoryAdjective
	case 'V':
		return CategoryVerb
	case 'N':
		return CategoryNoun
	case 'R':
		return CategoryAdverb
	}
	return CategoryNone
}

// Category is a lexical part-of-speech category as used by WordNet-style
// resources.
type Category string

const (
	CategoryNone      Category = ""
	CategoryNoun      Category = "n"
	CategoryVerb      Category = "v"
	CategoryAdjective Category = "a"
	CategoryAdverb    Category = "r"
)

// Categories lists the open-class categories in resource order.
var Categories = []Category{CategoryNoun, CategoryVerb, CategoryAdjective, CategoryAdverb}

// Rank orders categories the way lexical resources enumerate them.
func (c Category) Rank() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}

// TaggedToken pairs a surface token with its tag.
type TaggedToken struct {
	Word string
	Tag  Tag
}

// MarshalJSON encodes the pair as a two-element array: ["word", "TAG"].
func (t TaggedToken) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal([2]string{t.Word, string(t.Tag)})
}

// Words returns the surface forms of tagged tokens, in order.
func Words(tagged []TaggedToken) []string {
	words := make([]string, len(tagged))
	for i, t := range tagged {
		words[i] = t.Word
	}
	return words
}

// Tagger assigns base part-of-speech tags to a token sequence. The result
// has the same length and order as the input.
type Tagger interface {
	Tag(tokens []string) ([]TaggedToken, error)
}
