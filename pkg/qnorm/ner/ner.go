// Package ner recognizes named entities over tagged sentences. Recognizers
// return a flat tree of leaf tokens and labeled entity spans; Entities
// turns that tree into the NamedEntity list the pipeline reports.
package ner

import (
	"errors"
	"strings"
	"unicode"

	"github.com/cognicore/qnorm/pkg/qnorm/internalerr"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// Organization is the label given to bare all-uppercase proper nouns.
const Organization = "ORGANIZATION"

// NodeKind distinguishes plain tokens from grouped entity spans.
type NodeKind int

const (
	LeafNode NodeKind = iota
	SpanNode
)

// Node is one child of a recognized sentence. A LeafNode carries exactly
// one token and no label; a SpanNode carries the label and the tokens of
// one entity mention.
type Node struct {
	Kind   NodeKind
	Label  string
	Tokens []pos.TaggedToken
}

// Leaf creates a leaf node for a single token.
func Leaf(tt pos.TaggedToken) Node {
	return Node{Kind: LeafNode, Tokens: []pos.TaggedToken{tt}}
}

// Span creates an entity span node.
func Span(label string, tokens ...pos.TaggedToken) Node {
	return Node{Kind: SpanNode, Label: label, Tokens: tokens}
}

// NamedEntity is a labeled entity mention.
type NamedEntity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Recognizer finds named entities in a tagged sentence.
type Recognizer interface {
	// Probe checks once that the recognizer's resources are present.
	Probe() error
	// Recognize returns the sentence as a sequence of nodes. Failures caused
	// by missing resources are reported as *CapabilityError.
	Recognize(tagged []pos.TaggedToken) ([]Node, error)
}

// CapabilityError reports that a recognizer cannot run because a resource
// it needs is missing or broken. It matches internalerr.ErrCapabilityUnavailable.
type CapabilityError struct {
	Err error
}

func (e *CapabilityError) Error() string {
	if e.Err == nil {
		return "named entity recognition unavailable"
	}
	return "named entity recognition unavailable: " + e.Err.Error()
}

func (e *CapabilityError) Unwrap() []error {
	if e.Err == nil {
		return []error{internalerr.ErrCapabilityUnavailable}
	}
	return []error{internalerr.ErrCapabilityUnavailable, e.Err}
}

// IsCapability reports whether err is, or wraps, a capability failure.
func IsCapability(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce) || errors.Is(err, internalerr.ErrCapabilityUnavailable)
}

// Entities flattens a recognized sentence. Each span becomes an entity
// whose text is its words joined by spaces. A leaf proper noun written
// entirely in uppercase becomes an ORGANIZATION.
func Entities(tree []Node) []NamedEntity {
	entities := []NamedEntity{}
	for _, node := range tree {
		switch node.Kind {
		case SpanNode:
			entities = append(entities, NamedEntity{
				Text: strings.Join(pos.Words(node.Tokens), " "),
				Type: node.Label,
			})
		case LeafNode:
			for _, tt := range node.Tokens {
				if tt.Tag.IsProperNoun() && isUpper(tt.Word) {
					entities = append(entities, NamedEntity{Text: tt.Word, Type: Organization})
				}
			}
		}
	}
	return entities
}

// isUpper reports whether s has at least one cased rune and no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// Mention is an entity found by a recognizer as surface text.
type Mention struct {
	Text  string
	Label string
}

// BuildTree lays mentions over a tagged sentence. Mentions are matched left
// to right as case-insensitive word sequences; tokens outside any matched
// mention become leaves. Mentions that cannot be located are skipped.
func BuildTree(tagged []pos.TaggedToken, mentions []Mention) []Node {
	tree := make([]Node, 0, len(tagged))
	i := 0
	for _, m := range mentions {
		words := strings.Fields(m.Text)
		if len(words) == 0 {
			continue
		}
		start := find(tagged, words, i)
		if start < 0 {
			continue
		}
		for ; i < start; i++ {
			tree = append(tree, Leaf(tagged[i]))
		}
		end := start + len(words)
		tree = append(tree, Span(m.Label, tagged[start:end]...))
		i = end
	}
	for ; i < len(tagged); i++ {
		tree = append(tree, Leaf(tagged[i]))
	}
	return tree
}

func find(tagged []pos.TaggedToken, words []string, from int) int {
	for start := from; start+len(words) <= len(tagged); start++ {
		match := true
		for k, w := range words {
			if !strings.EqualFold(tagged[start+k].Word, w) {
				match = false
				break
			}
		}
		if match {
			return start
		}
	}
	return -1
}
