package config

import (
	"fmt"
	"os"

	"github.com/cognicore/qnorm/pkg/qnorm/ingest"
	"github.com/cognicore/qnorm/pkg/qnorm/lexicon"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/stoplist"
)

// Loader loads all configuration files and constructs components. An
// empty path selects the embedded default for that resource.
type Loader struct {
	StoplistPath   string
	TaxonomyPath   string
	SynonymsPath   string
	VocabularyPath string
}

// Components holds all loaded configuration components
type Components struct {
	Stoplist   *stoplist.Manager
	Taxonomy   *ingest.Taxonomy
	Synonyms   *lexicon.Lexicon
	Vocabulary *Vocabulary
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load stoplist
	data, err := source(l.StoplistPath, DefaultStoplist)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	sl, err := ParseStoplist(data)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	comp.Stoplist = stoplist.NewManager(sl.Terms)

	// Load taxonomy
	data, err = source(l.TaxonomyPath, DefaultTaxonomy)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	tax, err := ParseTaxonomy(data)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	comp.Taxonomy = ingest.NewTaxonomy()
	for _, c := range tax.DomainEntities {
		comp.Taxonomy.AddCategory(c.Category, c.Terms)
	}

	// Load domain synonyms
	data, err = source(l.SynonymsPath, DefaultSynonyms)
	if err != nil {
		return nil, fmt.Errorf("load synonyms: %w", err)
	}
	comp.Synonyms, err = lexicon.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load synonyms: %w", err)
	}

	// Load vocabulary
	data, err = source(l.VocabularyPath, DefaultVocabulary)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	comp.Vocabulary, err = ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	return comp, nil
}

func source(path, fallback string) ([]byte, error) {
	if path == "" {
		return readDefault(fallback), nil
	}
	return os.ReadFile(path)
}

// Tags converts the configured skip tags into part-of-speech tags.
func (v *Vocabulary) Tags() []pos.Tag {
	tags := make([]pos.Tag, len(v.SkipTags))
	for i, t := range v.SkipTags {
		tags[i] = pos.Tag(t)
	}
	return tags
}
