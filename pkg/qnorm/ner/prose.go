package ner

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

const probeText = "Barack Obama visited Paris with executives from Google."

// ProseRecognizer extracts entities with prose's bundled NER model.
type ProseRecognizer struct{}

// NewProseRecognizer creates a recognizer backed by prose.
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Probe runs the model once over a fixed sentence.
func (r *ProseRecognizer) Probe() error {
	_, err := r.extract(probeText)
	return err
}

// Recognize extracts mentions from the joined words and lays them over
// the tagged tokens.
func (r *ProseRecognizer) Recognize(tagged []pos.TaggedToken) ([]Node, error) {
	if len(tagged) == 0 {
		return []Node{}, nil
	}
	mentions, err := r.extract(strings.Join(pos.Words(tagged), " "))
	if err != nil {
		return nil, err
	}
	return BuildTree(tagged, mentions), nil
}

func (r *ProseRecognizer) extract(text string) (mentions []Mention, err error) {
	defer func() {
		if p := recover(); p != nil {
			mentions = nil
			err = &CapabilityError{Err: fmt.Errorf("prose entity model: %v", p)}
		}
	}()

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, &CapabilityError{Err: fmt.Errorf("prose entity model: %w", err)}
	}
	for _, ent := range doc.Entities() {
		mentions = append(mentions, Mention{Text: ent.Text, Label: ent.Label})
	}
	return mentions, nil
}
