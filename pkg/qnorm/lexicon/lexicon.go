package lexicon

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon stores the fixed domain synonym table: each canonical word maps
// to an ordered list of curated alternatives. Entries listed here take
// precedence over the lexical database during synonym expansion.
type Lexicon struct {
	// canonical -> variants in curated order, canonical excluded
	// Example: "laptop" -> ["notebook", "computer", "macbook", "chromebook"]
	synonyms map[string][]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{synonyms: make(map[string][]string)}
}

// ParseYAML builds a lexicon from YAML bytes.
//
// Expected format:
//
//	synonyms:
//	  - canonical: buy
//	    variants: [purchase, order, get, acquire]
//	  - canonical: laptop
//	    variants: [notebook, computer, macbook, chromebook]
//
// Tokens are normalized to lowercase and variant order is preserved.
func ParseYAML(data []byte) (*Lexicon, error) {
	var config struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse synonyms: %w", err)
	}

	lex := New()
	for _, entry := range config.Synonyms {
		if strings.TrimSpace(entry.Canonical) == "" {
			continue
		}
		lex.AddSynonymGroup(entry.Canonical, entry.Variants)
	}

	return lex, nil
}

// AddSynonymGroup sets the variants of a canonical word, replacing any
// previous group. The canonical itself and duplicates are dropped from
// the variant list.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(strings.TrimSpace(canonical))

	normalized := make([]string, 0, len(variants))
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		normalized = append(normalized, v)
		seen[v] = true
	}

	l.synonyms[canonical] = normalized
}

// Synonyms returns the curated variants of a canonical word, in order.
// ok is false when the word has no entry; variants of other entries are
// not looked up in reverse.
func (l *Lexicon) Synonyms(token string) (variants []string, ok bool) {
	variants, ok = l.synonyms[strings.ToLower(token)]
	return variants, ok
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	totalVariants := 0
	for _, variants := range l.synonyms {
		totalVariants += len(variants)
	}
	return LexiconStats{
		SynonymGroups: len(l.synonyms),
		TotalVariants: totalVariants,
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	SynonymGroups int // Number of canonical forms (synonym groups)
	TotalVariants int // Total number of variants across all groups
}
