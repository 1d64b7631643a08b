package store

import (
	"context"
	"sort"
	"strings"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// Store is the lexical database behind lemmatization and synonym lookup
type Store interface {
	Close() error

	// Import adds a dataset. Existing synsets, senses and exceptions with
	// the same keys are replaced.
	Import(ctx context.Context, d Dataset) error

	// HasLemma reports whether lemma is a base form of the category.
	HasLemma(ctx context.Context, lemma string, cat pos.Category) (bool, error)

	// Exceptions returns the irregular base forms listed for an inflected
	// form, or nil.
	Exceptions(ctx context.Context, form string, cat pos.Category) ([]string, error)

	// Synsets returns the synsets containing lemma, ordered by category
	// (n, v, a, r) and then by sense number. CategoryNone searches all
	// categories.
	Synsets(ctx context.Context, lemma string, cat pos.Category) ([]Synset, error)

	Stats(ctx context.Context) (Stats, error)
}

// Dataset is a batch of lexical data to import
type Dataset struct {
	Synsets    []Synset
	Senses     []Sense
	Exceptions []Exception
}

// Synset is a group of synonymous lemmas of one category
type Synset struct {
	ID       string
	Category pos.Category
	Lemmas   []Lemma
}

// Lemma is a member of a synset. Multi-word names use '_' between words.
// Count is the usage frequency of this word sense in a tagged corpus.
type Lemma struct {
	Name  string
	Count int
}

// Sense ranks a synset among the senses of a lemma (1 = most frequent)
type Sense struct {
	Lemma    string
	SynsetID string
	Number   int
}

// Exception maps an irregular inflected form to its base forms
type Exception struct {
	Category pos.Category
	Form     string
	Bases    []string
}

// Stats summarizes the contents of a store
type Stats struct {
	Synsets    int
	Lemmas     int
	Senses     int
	Exceptions int
}

// Key normalizes a lemma or form for lookups.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NoSense is the sense number used for lemmas without a sense entry.
const NoSense = 9999

// SortSynsets orders synsets by category rank, then by the lemma's sense
// number, then by ID.
func SortSynsets(synsets []Synset, senseNumber func(id string) int) {
	sort.SliceStable(synsets, func(i, j int) bool {
		a, b := synsets[i], synsets[j]
		if ra, rb := a.Category.Rank(), b.Category.Rank(); ra != rb {
			return ra < rb
		}
		if na, nb := senseNumber(a.ID), senseNumber(b.ID); na != nb {
			return na < nb
		}
		return a.ID < b.ID
	})
}
