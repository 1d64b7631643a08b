package ingest

import (
	"reflect"
	"testing"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

func TestNounPhrases(t *testing.T) {
	tagged := []pos.TaggedToken{
		{Word: "show", Tag: "VB"},
		{Word: "cheap", Tag: "JJ"},
		{Word: "gaming", Tag: "NN"},
		{Word: "laptops", Tag: "NNS"},
		{Word: "with", Tag: "IN"},
		{Word: "good", Tag: "JJ"},
		{Word: "reviews", Tag: "NNS"},
	}

	got := NounPhrases(tagged)
	expected := []string{"cheap gaming laptops", "good reviews"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestNounPhrasesQuestionNoun(t *testing.T) {
	tagged := []pos.TaggedToken{
		{Word: "what", Tag: "WP"},
		{Word: "price", Tag: pos.QuestionNoun},
		{Word: "?", Tag: pos.Period},
	}

	got := NounPhrases(tagged)
	if !reflect.DeepEqual(got, []string{"price"}) {
		t.Errorf("NN-Q should count as noun-like, got %v", got)
	}
}

func TestNounPhrasesNone(t *testing.T) {
	got := NounPhrases([]pos.TaggedToken{{Word: "run", Tag: "VB"}})
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty slice, got %#v", got)
	}
}
