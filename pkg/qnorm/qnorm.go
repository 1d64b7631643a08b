// Package qnorm turns free-text user queries into a structured, lemmatized,
// entity-annotated and synonym-expanded form suited to search.
//
// A Processor runs every sentence of a query through the same stages:
// ingestion (clean, split, tokenize, tag), stopword filtering,
// lemmatization, entity and phrase extraction, synonym expansion, entity
// aggregation and query reconstruction. Processing is all-or-nothing: any
// stage failure turns the whole query into an error result.
package qnorm

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/cognicore/qnorm/internal/logging"
	"github.com/cognicore/qnorm/pkg/qnorm/entities"
	"github.com/cognicore/qnorm/pkg/qnorm/ingest"
	"github.com/cognicore/qnorm/pkg/qnorm/lemma"
	"github.com/cognicore/qnorm/pkg/qnorm/ner"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/query"
	"github.com/cognicore/qnorm/pkg/qnorm/stoplist"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
	"github.com/cognicore/qnorm/pkg/qnorm/synonyms"
)

// Processor is the query normalization facade.
//
// A Processor is meant for one caller at a time. Its only mutable state is
// the named entity capability, which can go from available to unavailable
// but never back.
type Processor struct {
	store         store.Store
	pipeline      *ingest.Pipeline
	filter        *stoplist.Filter
	lemmatizer    *lemma.Lemmatizer
	recognizer    ner.Recognizer
	expander      *synonyms.Expander
	aggregator    *entities.Aggregator
	reconstructor *query.Reconstructor
	log           logrus.FieldLogger
	entropy       *ulid.MonotonicEntropy
	nerAvailable  bool
}

// Options configures a Processor instance. A nil Recognizer disables
// named entity recognition.
type Options struct {
	Store         store.Store
	Pipeline      *ingest.Pipeline
	Filter        *stoplist.Filter
	Lemmatizer    *lemma.Lemmatizer
	Recognizer    ner.Recognizer
	Expander      *synonyms.Expander
	Aggregator    *entities.Aggregator
	Reconstructor *query.Reconstructor
	Logger        logrus.FieldLogger
}

// New creates a Processor and probes the recognizer once.
func New(opts Options) *Processor {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	p := &Processor{
		store:         opts.Store,
		pipeline:      opts.Pipeline,
		filter:        opts.Filter,
		lemmatizer:    opts.Lemmatizer,
		recognizer:    opts.Recognizer,
		expander:      opts.Expander,
		aggregator:    opts.Aggregator,
		reconstructor: opts.Reconstructor,
		log:           log,
		entropy:       ulid.Monotonic(rand.Reader, 0),
	}

	if p.recognizer != nil {
		if err := p.recognizer.Probe(); err != nil {
			log.WithError(err).Warn("named entity recognition unavailable")
		} else {
			p.nerAvailable = true
		}
	}
	return p
}

// NERAvailable reports whether named entity recognition is still enabled.
func (p *Processor) NERAvailable() bool {
	return p.nerAvailable
}

// Close releases the lexical store.
func (p *Processor) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// Process normalizes a query. It never panics and never returns a partial
// result: a failure in any sentence yields a StatusError result.
func (p *Processor) Process(ctx context.Context, q string) (res QueryResult) {
	id := ulid.MustNew(ulid.Now(), p.entropy).String()
	log := p.log.WithField("query_id", id)

	defer func() {
		if r := recover(); r != nil {
			res = p.failure(log, id, q, fmt.Errorf("panic: %v", r))
		}
	}()

	processed, err := p.pipeline.Process(q)
	if err != nil {
		return p.failure(log, id, q, err)
	}

	sentences := make([]SentenceResult, 0, len(processed.Sentences))
	for _, s := range processed.Sentences {
		if err := ctx.Err(); err != nil {
			return p.failure(log, id, q, err)
		}
		sr, err := p.processSentence(ctx, log, s)
		if err != nil {
			return p.failure(log, id, q, err)
		}
		sentences = append(sentences, sr)
	}

	return QueryResult{
		QueryID:        id,
		OriginalQuery:  q,
		Sentences:      sentences,
		Status:         StatusSuccess,
		NERAvailable:   p.nerAvailable,
		NERInstallHint: p.installHint(),
	}
}

func (p *Processor) processSentence(ctx context.Context, log logrus.FieldLogger, s ingest.Sentence) (SentenceResult, error) {
	filtered := p.filter.Apply(s.Tagged)

	lemmas, err := p.lemmatizer.LemmatizeTokens(ctx, filtered)
	if err != nil {
		return SentenceResult{}, fmt.Errorf("lemmatize: %w", err)
	}

	named, err := p.namedEntities(log, s.Tagged)
	if err != nil {
		return SentenceResult{}, err
	}
	phrases := ingest.NounPhrases(s.Tagged)

	expanded, err := p.expander.Expand(ctx, lemmas, filtered)
	if err != nil {
		return SentenceResult{}, fmt.Errorf("expand synonyms: %w", err)
	}

	bundle := p.aggregator.Aggregate(lemmas, s.Tagged, named, phrases)
	rebuilt := p.reconstructor.Reconstruct(lemmas, s.Tagged, named, expanded)

	log.WithFields(logrus.Fields{
		"tokens":   len(s.Tokens),
		"filtered": len(filtered),
		"entities": len(bundle.AllEntities),
		"query":    rebuilt,
	}).Debug("sentence processed")

	return SentenceResult{
		OriginalSentence: s.Text,
		Tokens:           s.Tokens,
		POSTags:          s.Tagged,
		FilteredTokens:   pos.Words(filtered),
		Lemmatized:       lemmas,
		NamedEntities:    named,
		NounPhrases:      phrases,
		Expanded:         expanded,
		Entities:         bundle,
		ProcessedQuery:   rebuilt,
		NERAvailable:     p.nerAvailable,
	}, nil
}

// namedEntities runs the recognizer while the capability lasts. A
// capability failure disables recognition for the rest of the process and
// the sentence continues without named entities.
func (p *Processor) namedEntities(log logrus.FieldLogger, tagged []pos.TaggedToken) ([]ner.NamedEntity, error) {
	if !p.nerAvailable {
		return []ner.NamedEntity{}, nil
	}

	tree, err := p.recognizer.Recognize(tagged)
	if err != nil {
		if ner.IsCapability(err) {
			p.nerAvailable = false
			log.WithError(err).Warn("named entity recognition disabled")
			return []ner.NamedEntity{}, nil
		}
		return nil, fmt.Errorf("named entities: %w", err)
	}
	return ner.Entities(tree), nil
}

func (p *Processor) failure(log logrus.FieldLogger, id, q string, err error) QueryResult {
	log.WithError(err).Error("query processing failed")
	return QueryResult{
		QueryID:        id,
		OriginalQuery:  q,
		Status:         StatusError,
		Message:        err.Error(),
		NERAvailable:   p.nerAvailable,
		NERInstallHint: p.installHint(),
	}
}

func (p *Processor) installHint() *string {
	if p.nerAvailable {
		return nil
	}
	hint := NERInstallHint
	return &hint
}
