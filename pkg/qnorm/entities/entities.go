// Package entities merges named entities, noun phrases, domain terms and
// salient tokens of a sentence into one bundle.
package entities

import (
	"strings"

	"github.com/cognicore/qnorm/pkg/qnorm/ingest"
	"github.com/cognicore/qnorm/pkg/qnorm/ner"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// DomainEntity is a lemma matched against a domain category.
type DomainEntity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Bundle is the per-sentence entity summary.
type Bundle struct {
	NamedEntities  []ner.NamedEntity `json:"named_entities"`
	NounPhrases    []string          `json:"noun_phrases"`
	DomainEntities []DomainEntity    `json:"domain_entities"`
	AllEntities    []string          `json:"all_entities"`
}

// Aggregator builds entity bundles.
type Aggregator struct {
	taxonomy     *ingest.Taxonomy
	intensifiers map[string]struct{}
}

// NewAggregator creates an aggregator over a domain taxonomy. Adjectives
// listed as intensifiers are never treated as entities.
func NewAggregator(taxonomy *ingest.Taxonomy, intensifiers []string) *Aggregator {
	if taxonomy == nil {
		taxonomy = ingest.NewTaxonomy()
	}
	set := make(map[string]struct{}, len(intensifiers))
	for _, w := range intensifiers {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Aggregator{taxonomy: taxonomy, intensifiers: set}
}

// Aggregate combines the sentence's extraction results:
//  1. entity list = named entity texts, then noun phrases
//  2. each lemma is matched against the taxonomy; a match is a domain
//     entity unless its text is already in the entity list
//  3. numbers and non-intensifier adjectives from the tagged sentence are
//     appended to the entity list when not already present
//  4. AllEntities is the entity list without duplicates, first seen first
func (a *Aggregator) Aggregate(lemmas []string, tagged []pos.TaggedToken, named []ner.NamedEntity, phrases []string) Bundle {
	b := Bundle{
		NamedEntities:  nonNilEntities(named),
		NounPhrases:    nonNilStrings(phrases),
		DomainEntities: []DomainEntity{},
	}

	list := make([]string, 0, len(named)+len(phrases))
	for _, ne := range named {
		list = append(list, ne.Text)
	}
	list = append(list, phrases...)

	present := make(map[string]struct{}, len(list))
	for _, e := range list {
		present[e] = struct{}{}
	}

	for _, lemma := range lemmas {
		if _, ok := present[lemma]; ok {
			continue
		}
		for _, cat := range a.taxonomy.Categories(lemma) {
			b.DomainEntities = append(b.DomainEntities, DomainEntity{Text: lemma, Type: cat})
		}
	}

	for _, tt := range tagged {
		if _, ok := present[tt.Word]; ok {
			continue
		}
		salient := tt.Tag == pos.Number
		if !salient && tt.Tag.IsAdjectiveLike() {
			_, intensifier := a.intensifiers[tt.Word]
			salient = !intensifier
		}
		if salient {
			list = append(list, tt.Word)
			present[tt.Word] = struct{}{}
		}
	}

	b.AllEntities = dedupe(list)
	return b
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

func nonNilEntities(in []ner.NamedEntity) []ner.NamedEntity {
	if in == nil {
		return []ner.NamedEntity{}
	}
	return in
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
