// Package synonyms expands lemmatized tokens with ranked alternative forms
// drawn from the domain synonym table or the lexical database.
package synonyms

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/qnorm/pkg/qnorm/lexicon"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/stoplist"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
)

// Options tunes which tokens are expanded and how many alternatives are kept.
type Options struct {
	IgnoreList  []string  // tokens never expanded nor offered as candidates
	SkipTags    []pos.Tag // tags whose tokens pass through unexpanded
	Limit       int       // ranked candidates appended per token
	DomainLimit int       // domain table entries appended per token
}

// Expander appends synonyms after each eligible token.
type Expander struct {
	store       store.Store
	domain      *lexicon.Lexicon
	stops       *stoplist.Manager
	ignore      map[string]struct{}
	skipTags    map[pos.Tag]struct{}
	limit       int
	domainLimit int
}

// New creates an expander. domain may be nil.
func New(st store.Store, domain *lexicon.Lexicon, stops *stoplist.Manager, opts Options) *Expander {
	if domain == nil {
		domain = lexicon.New()
	}
	ignore := make(map[string]struct{}, len(opts.IgnoreList))
	for _, w := range opts.IgnoreList {
		ignore[strings.ToLower(w)] = struct{}{}
	}
	skip := make(map[pos.Tag]struct{}, len(opts.SkipTags))
	for _, t := range opts.SkipTags {
		skip[t] = struct{}{}
	}
	return &Expander{
		store:       st,
		domain:      domain,
		stops:       stops,
		ignore:      ignore,
		skipTags:    skip,
		limit:       opts.Limit,
		domainLimit: opts.DomainLimit,
	}
}

// Expand walks tokens and tagged in lockstep. Every token is emitted, in
// order, followed by zero or more synonyms, so the result is never shorter
// than the input.
func (e *Expander) Expand(ctx context.Context, tokens []string, tagged []pos.TaggedToken) ([]string, error) {
	n := min(len(tokens), len(tagged))
	expanded := make([]string, 0, n)

	for i := 0; i < n; i++ {
		token, tag := tokens[i], tagged[i].Tag
		expanded = append(expanded, token)

		lower := strings.ToLower(token)
		if e.skip(lower, tag) {
			continue
		}

		// Domain table wins over the lexical database
		if variants, ok := e.domain.Synonyms(lower); ok {
			expanded = append(expanded, variants[:min(len(variants), e.domainLimit)]...)
			continue
		}

		ranked, err := e.rank(ctx, lower, tag.Category())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", token, err)
		}
		expanded = append(expanded, ranked...)
	}

	return expanded, nil
}

func (e *Expander) skip(lower string, tag pos.Tag) bool {
	if _, ok := e.ignore[lower]; ok {
		return true
	}
	if e.stops.IsStop(lower) {
		return true
	}
	if _, ok := e.skipTags[tag]; ok {
		return true
	}
	if utf8.RuneCountInString(lower) <= 2 {
		return true
	}
	first, _ := utf8.DecodeRuneInString(string(tag))
	return !unicode.IsLetter(first)
}

type candidate struct {
	text  string
	score int
}

// rank scores every synonym of token found in the store. A multi-word
// candidate scores one point per synset it appears in; a single word
// scores its highest usage count and is dropped unless that count
// exceeds one. The best Limit candidates are returned, ties in first-seen
// order.
func (e *Expander) rank(ctx context.Context, token string, cat pos.Category) ([]string, error) {
	synsets, err := e.store.Synsets(ctx, token, cat)
	if err != nil {
		return nil, err
	}

	var cands []candidate
	index := make(map[string]int)
	bump := func(text string, score func(old int) int) {
		i, ok := index[text]
		if !ok {
			i = len(cands)
			index[text] = i
			cands = append(cands, candidate{text: text})
		}
		cands[i].score = score(cands[i].score)
	}

	for _, syn := range synsets {
		for _, l := range syn.Lemmas {
			text := strings.ToLower(strings.ReplaceAll(l.Name, "_", " "))
			if !e.eligible(text, token) {
				continue
			}
			switch words := len(strings.Fields(text)); {
			case words > 1 && allRunes(text, isAlnumOrSpace):
				bump(text, func(old int) int { return old + 1 })
			case words == 1 && allRunes(text, isAlnum):
				if l.Count > 1 {
					count := l.Count
					bump(text, func(old int) int { return max(old, count) })
				}
			}
		}
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

	out := make([]string, 0, min(len(cands), e.limit))
	for _, c := range cands[:min(len(cands), e.limit)] {
		out = append(out, c.text)
	}
	return out, nil
}

func (e *Expander) eligible(candidate, token string) bool {
	if candidate == token {
		return false
	}
	if _, ok := e.ignore[candidate]; ok {
		return false
	}
	return !e.stops.IsStop(candidate)
}

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }

func isAlnumOrSpace(r rune) bool { return isAlnum(r) || unicode.IsSpace(r) }

func allRunes(s string, ok func(rune) bool) bool {
	for _, r := range s {
		if !ok(r) {
			return false
		}
	}
	return true
}
