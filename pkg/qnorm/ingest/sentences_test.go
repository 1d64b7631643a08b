package ingest

import (
	"reflect"
	"testing"
)

func TestPunktSplitter(t *testing.T) {
	splitter := NewPunktSplitter()

	got, err := splitter.Split("what is the price? show me laptops")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	expected := []string{"what is the price?", "show me laptops"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPunktSplitterSingleSentence(t *testing.T) {
	got, err := NewPunktSplitter().Split("i need a cheap macbook")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 1 || got[0] != "i need a cheap macbook" {
		t.Errorf("Expected one sentence, got %v", got)
	}
}

func TestPunktSplitterBlank(t *testing.T) {
	got, err := NewPunktSplitter().Split("   ")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Blank text should produce no sentences, got %v", got)
	}
}
