package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
)

// Store is an in-memory implementation of store.Store. It backs the
// embedded starter dictionary and tests.
type Store struct {
	mu         sync.RWMutex
	synsets    map[string]store.Synset
	byLemma    map[string]map[string]struct{} // lemma → synset IDs
	senses     map[string]map[string]int      // lemma → synset ID → number
	exceptions map[pos.Category]map[string][]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		synsets:    make(map[string]store.Synset),
		byLemma:    make(map[string]map[string]struct{}),
		senses:     make(map[string]map[string]int),
		exceptions: make(map[pos.Category]map[string][]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Import implements store.Store.
func (s *Store) Import(ctx context.Context, d store.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, syn := range d.Synsets {
		if syn.ID == "" {
			continue
		}
		if old, ok := s.synsets[syn.ID]; ok {
			for _, l := range old.Lemmas {
				delete(s.byLemma[store.Key(l.Name)], syn.ID)
			}
		}
		cp := store.Synset{ID: syn.ID, Category: syn.Category}
		for _, l := range syn.Lemmas {
			if l.Name == "" {
				continue
			}
			cp.Lemmas = append(cp.Lemmas, l)
			key := store.Key(l.Name)
			if s.byLemma[key] == nil {
				s.byLemma[key] = make(map[string]struct{})
			}
			s.byLemma[key][syn.ID] = struct{}{}
		}
		s.synsets[syn.ID] = cp
	}

	for _, sn := range d.Senses {
		if sn.Lemma == "" || sn.SynsetID == "" {
			continue
		}
		key := store.Key(sn.Lemma)
		if s.senses[key] == nil {
			s.senses[key] = make(map[string]int)
		}
		s.senses[key][sn.SynsetID] = sn.Number
	}

	for _, exc := range d.Exceptions {
		form := store.Key(exc.Form)
		if form == "" || len(exc.Bases) == 0 {
			continue
		}
		if s.exceptions[exc.Category] == nil {
			s.exceptions[exc.Category] = make(map[string][]string)
		}
		s.exceptions[exc.Category][form] = append([]string(nil), exc.Bases...)
	}
	return nil
}

// HasLemma implements store.Store.
func (s *Store) HasLemma(ctx context.Context, lemma string, cat pos.Category) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id := range s.byLemma[store.Key(lemma)] {
		if s.synsets[id].Category == cat {
			return true, nil
		}
	}
	return false, nil
}

// Exceptions implements store.Store.
func (s *Store) Exceptions(ctx context.Context, form string, cat pos.Category) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bases := s.exceptions[cat][store.Key(form)]
	if len(bases) == 0 {
		return nil, nil
	}
	return append([]string(nil), bases...), nil
}

// Synsets implements store.Store.
func (s *Store) Synsets(ctx context.Context, lemma string, cat pos.Category) ([]store.Synset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := store.Key(lemma)
	var out []store.Synset
	for id := range s.byLemma[key] {
		syn := s.synsets[id]
		if cat != pos.CategoryNone && syn.Category != cat {
			continue
		}
		out = append(out, copySynset(syn))
	}

	senses := s.senses[key]
	store.SortSynsets(out, func(id string) int {
		if n, ok := senses[id]; ok {
			return n
		}
		return store.NoSense
	})
	return out, nil
}

// Stats implements store.Store.
func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := store.Stats{Synsets: len(s.synsets)}
	for _, ids := range s.byLemma {
		if len(ids) > 0 {
			st.Lemmas++
		}
	}
	for _, bySyn := range s.senses {
		st.Senses += len(bySyn)
	}
	for _, forms := range s.exceptions {
		st.Exceptions += len(forms)
	}
	return st, nil
}

func copySynset(syn store.Synset) store.Synset {
	syn.Lemmas = append([]store.Lemma(nil), syn.Lemmas...)
	return syn
}
