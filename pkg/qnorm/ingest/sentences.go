package ingest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

// SentenceSplitter segments text into sentences.
type SentenceSplitter interface {
	Split(text string) ([]string, error)
}

var (
	punktOnce sync.Once
	punkt     *sentences.DefaultSentenceTokenizer
	punktErr  error
)

// PunktSplitter splits English text with the pre-trained Punkt model.
type PunktSplitter struct{}

// NewPunktSplitter creates a splitter backed by the embedded English Punkt model.
func NewPunktSplitter() *PunktSplitter {
	return &PunktSplitter{}
}

// Split returns the trimmed, non-empty sentences of text.
func (PunktSplitter) Split(text string) ([]string, error) {
	punktOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			punktErr = fmt.Errorf("load english punkt data: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			punktErr = fmt.Errorf("parse english punkt data: %w", err)
			return
		}
		punkt = sentences.NewSentenceTokenizer(training)
	})
	if punktErr != nil {
		return nil, punktErr
	}

	raw := punkt.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		if s := strings.TrimSpace(sent.Text); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
