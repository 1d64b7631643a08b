// Package inflect backs a lexical store with a full English inflection
// table, so that lemmatization of common words works without an imported
// WordNet database.
package inflect

import (
	"context"
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
)

// Store answers base-form queries from the wrapped store first and falls
// back to the inflection table when the store has nothing to say. Synset
// lookups are served by the wrapped store alone.
type Store struct {
	store.Store
	table *golem.Lemmatizer
}

// Wrap backs st with the English inflection table.
func Wrap(st store.Store) (*Store, error) {
	table, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load inflection table: %w", err)
	}
	return &Store{Store: st, table: table}, nil
}

// HasLemma reports whether lemma is a base form in the wrapped store or
// a headword of the inflection table.
func (s *Store) HasLemma(ctx context.Context, lemma string, cat pos.Category) (bool, error) {
	ok, err := s.Store.HasLemma(ctx, lemma, cat)
	if err != nil || ok {
		return ok, err
	}
	key := store.Key(lemma)
	return s.table.InDict(key) && s.table.LemmaLower(key) == key, nil
}

// Exceptions returns the irregular bases listed by the wrapped store, or
// the base forms the inflection table gives for form.
func (s *Store) Exceptions(ctx context.Context, form string, cat pos.Category) ([]string, error) {
	bases, err := s.Store.Exceptions(ctx, form, cat)
	if err != nil || len(bases) > 0 {
		return bases, err
	}
	key := store.Key(form)
	if !s.table.InDict(key) {
		return nil, nil
	}
	var out []string
	for _, b := range s.table.Lemmas(key) {
		if b != key && !contains(out, b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
