package ingest

import "strings"

// Taxonomy maps domain categories to their member terms. Categories keep
// the order in which they were added.
type Taxonomy struct {
	order []string
	terms map[string]map[string]struct{} // category → terms (lowercase)
}

// NewTaxonomy creates an empty taxonomy
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{terms: make(map[string]map[string]struct{})}
}

// AddCategory adds terms to a category, creating it on first use.
func (t *Taxonomy) AddCategory(name string, terms []string) {
	set, ok := t.terms[name]
	if !ok {
		set = make(map[string]struct{}, len(terms))
		t.terms[name] = set
		t.order = append(t.order, name)
	}
	for _, term := range terms {
		set[strings.ToLower(term)] = struct{}{}
	}
}

// Categories returns every category containing term, in category order.
// Matching is exact on the term as given.
func (t *Taxonomy) Categories(term string) []string {
	var cats []string
	for _, name := range t.order {
		if _, ok := t.terms[name][term]; ok {
			cats = append(cats, name)
		}
	}
	return cats
}

// Names returns the category names in order.
func (t *Taxonomy) Names() []string {
	return append([]string(nil), t.order...)
}
