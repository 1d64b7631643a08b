package qnorm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/qnorm/internal/logging"
	"github.com/cognicore/qnorm/pkg/qnorm/config"
	"github.com/cognicore/qnorm/pkg/qnorm/entities"
	"github.com/cognicore/qnorm/pkg/qnorm/ingest"
	"github.com/cognicore/qnorm/pkg/qnorm/lemma"
	"github.com/cognicore/qnorm/pkg/qnorm/ner"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/query"
	"github.com/cognicore/qnorm/pkg/qnorm/stoplist"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
	"github.com/cognicore/qnorm/pkg/qnorm/store/inflect"
	"github.com/cognicore/qnorm/pkg/qnorm/store/memstore"
	"github.com/cognicore/qnorm/pkg/qnorm/store/sqlite"
	"github.com/cognicore/qnorm/pkg/qnorm/synonyms"
	"github.com/cognicore/qnorm/pkg/qnorm/wordnet"
)

// Open builds a Processor from settings with the prose tagger and
// recognizer. The lexical database is the sqlite file named in settings,
// or the embedded starter dictionary when none is set. log may be nil.
func Open(ctx context.Context, settings config.Settings, log logrus.FieldLogger) (*Processor, error) {
	if log == nil {
		log = logging.Discard()
	}

	comp, err := settings.Loader.Load()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"stopwords":      comp.Stoplist.Len(),
		"categories":     comp.Taxonomy.Names(),
		"synonym_groups": comp.Synonyms.Stats().SynonymGroups,
	}).Debug("configuration loaded")

	st, err := openStore(ctx, settings.WordNetDB, log)
	if err != nil {
		return nil, err
	}

	var recognizer ner.Recognizer
	if settings.NEREnabled {
		recognizer = ner.NewProseRecognizer()
	}

	return Assemble(comp, st, pos.NewProseTagger(), recognizer, log), nil
}

// Assemble wires loaded components around a store, tagger and optional
// recognizer.
func Assemble(comp *config.Components, st store.Store, tagger pos.Tagger, recognizer ner.Recognizer, log logrus.FieldLogger) *Processor {
	vocab := comp.Vocabulary

	pipeline := ingest.NewPipeline(
		ingest.NewPunktSplitter(),
		ingest.NewTokenizer(),
		tagger,
		pos.NewOverrider(vocab.Pronouns, vocab.QuestionWords),
	)

	return New(Options{
		Store:      st,
		Pipeline:   pipeline,
		Filter:     stoplist.NewFilter(comp.Stoplist, vocab.QuestionWords, vocab.Negators),
		Lemmatizer: lemma.New(st),
		Recognizer: recognizer,
		Expander: synonyms.New(st, comp.Synonyms, comp.Stoplist, synonyms.Options{
			IgnoreList:  vocab.IgnoreList,
			SkipTags:    vocab.Tags(),
			Limit:       vocab.SynonymLimit,
			DomainLimit: vocab.DomainSynonymLimit,
		}),
		Aggregator:    entities.NewAggregator(comp.Taxonomy, vocab.Intensifiers),
		Reconstructor: query.NewReconstructor(vocab.ActionVerbs, vocab.HelperStops, vocab.DefaultAction),
		Logger:        log,
	})
}

func openStore(ctx context.Context, path string, log logrus.FieldLogger) (store.Store, error) {
	if path != "" {
		st, err := sqlite.OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open lexical database: %w", err)
		}
		stats, err := st.Stats(ctx)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("open lexical database: %w", err)
		}
		if stats.Synsets == 0 {
			log.WithField("path", path).Warn("lexical database is empty; run wordnet-import")
		}
		return st, nil
	}
	return EmbeddedStore(ctx)
}

// EmbeddedStore returns an in-memory store loaded with the embedded
// starter dictionary and backed by the English inflection table.
func EmbeddedStore(ctx context.Context) (store.Store, error) {
	dataset, err := wordnet.Parse(wordnet.Embedded())
	if err != nil {
		return nil, fmt.Errorf("parse embedded dictionary: %w", err)
	}
	st := memstore.New()
	if err := st.Import(ctx, dataset); err != nil {
		return nil, fmt.Errorf("import embedded dictionary: %w", err)
	}
	wrapped, err := inflect.Wrap(st)
	if err != nil {
		return nil, err
	}
	return wrapped, nil
}
