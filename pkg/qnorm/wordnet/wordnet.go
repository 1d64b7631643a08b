// Package wordnet reads dictionaries in the WordNet database file format
// (data.*, index.sense, *.exc) into a store.Dataset.
package wordnet

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/cognicore/qnorm/pkg/qnorm/internalerr"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
)

//go:embed dict
var dictFS embed.FS

// Embedded returns the starter dictionary shipped with the module.
func Embedded() fs.FS {
	sub, err := fs.Sub(dictFS, "dict")
	if err != nil {
		panic(err)
	}
	return sub
}

var dataFiles = []struct {
	name string
	cat  pos.Category
}{
	{"data.noun", pos.CategoryNoun},
	{"data.verb", pos.CategoryVerb},
	{"data.adj", pos.CategoryAdjective},
	{"data.adv", pos.CategoryAdverb},
}

var excFiles = []struct {
	name string
	cat  pos.Category
}{
	{"noun.exc", pos.CategoryNoun},
	{"verb.exc", pos.CategoryVerb},
	{"adj.exc", pos.CategoryAdjective},
	{"adv.exc", pos.CategoryAdverb},
}

// Parse reads a WordNet dict directory. At least one data file must be
// present; index.sense and the exception lists are optional. Adjective
// satellites are folded into the adjective category.
func Parse(fsys fs.FS) (store.Dataset, error) {
	var ds store.Dataset

	found := 0
	for _, df := range dataFiles {
		synsets, err := readFile(fsys, df.name, parseData)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return store.Dataset{}, err
		}
		found++
		ds.Synsets = append(ds.Synsets, synsets...)
	}
	if found == 0 {
		return store.Dataset{}, fmt.Errorf("no data files: %w", internalerr.ErrNotFound)
	}

	senses, err := readFile(fsys, "index.sense", parseSenseIndex)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return store.Dataset{}, err
	}
	applyCounts(ds.Synsets, senses)
	for _, e := range senses {
		ds.Senses = append(ds.Senses, e.sense)
	}

	for _, ef := range excFiles {
		cat := ef.cat
		excs, err := readFile(fsys, ef.name, func(r io.Reader) ([]store.Exception, error) {
			return parseExceptions(r, cat)
		})
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return store.Dataset{}, err
		}
		ds.Exceptions = append(ds.Exceptions, excs...)
	}

	return ds, nil
}

func readFile[T any](fsys fs.FS, name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return out, nil
}

// SynsetID builds the identifier used for a synset at a data file offset.
func SynsetID(offset string, cat pos.Category) string {
	return offset + "-" + string(cat)
}

func categoryOf(ssType string) (pos.Category, bool) {
	switch ssType {
	case "n", "1":
		return pos.CategoryNoun, true
	case "v", "2":
		return pos.CategoryVerb, true
	case "a", "s", "3", "5":
		return pos.CategoryAdjective, true
	case "r", "4":
		return pos.CategoryAdverb, true
	}
	return pos.CategoryNone, false
}

// parseData reads synset lines:
// offset lex_filenum ss_type w_cnt word lex_id [word lex_id...] p_cnt ... | gloss
func parseData(r io.Reader) ([]store.Synset, error) {
	var synsets []store.Synset
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "  ") || strings.TrimSpace(line) == "" {
			continue
		}
		if i := strings.Index(line, "|"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: too few fields: %w", lineNo, internalerr.ErrInvalidInput)
		}

		cat, ok := categoryOf(fields[2])
		if !ok {
			return nil, fmt.Errorf("line %d: unknown synset type %q: %w", lineNo, fields[2], internalerr.ErrInvalidInput)
		}
		wcnt, err := strconv.ParseInt(fields[3], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: word count %q: %w", lineNo, fields[3], err)
		}
		if len(fields) < 4+2*int(wcnt) {
			return nil, fmt.Errorf("line %d: expected %d words: %w", lineNo, wcnt, internalerr.ErrInvalidInput)
		}

		syn := store.Synset{ID: SynsetID(fields[0], cat), Category: cat}
		for k := 0; k < int(wcnt); k++ {
			syn.Lemmas = append(syn.Lemmas, store.Lemma{Name: stripMarker(fields[4+2*k])})
		}
		synsets = append(synsets, syn)
	}
	return synsets, scanner.Err()
}

// stripMarker removes adjective syntactic markers such as "(a)", "(p)", "(ip)".
func stripMarker(word string) string {
	if strings.HasSuffix(word, ")") {
		if i := strings.LastIndex(word, "("); i > 0 {
			return word[:i]
		}
	}
	return word
}

type senseEntry struct {
	sense store.Sense
	count int
}

// parseSenseIndex reads lines: sense_key synset_offset sense_number tag_cnt
// where sense_key is lemma%ss_type:lex_filenum:lex_id:head_word:head_id.
func parseSenseIndex(r io.Reader) ([]senseEntry, error) {
	var entries []senseEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: too few fields: %w", lineNo, internalerr.ErrInvalidInput)
		}

		lemma, rest, ok := strings.Cut(fields[0], "%")
		if !ok || rest == "" {
			return nil, fmt.Errorf("line %d: malformed sense key %q: %w", lineNo, fields[0], internalerr.ErrInvalidInput)
		}
		cat, ok := categoryOf(rest[:1])
		if !ok {
			return nil, fmt.Errorf("line %d: unknown synset type in %q: %w", lineNo, fields[0], internalerr.ErrInvalidInput)
		}
		number, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: sense number: %w", lineNo, err)
		}
		count, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: tag count: %w", lineNo, err)
		}

		entries = append(entries, senseEntry{
			sense: store.Sense{Lemma: lemma, SynsetID: SynsetID(fields[1], cat), Number: number},
			count: count,
		})
	}
	return entries, scanner.Err()
}

// applyCounts copies tag counts from the sense index onto synset members.
func applyCounts(synsets []store.Synset, senses []senseEntry) {
	counts := make(map[string]int, len(senses))
	for _, e := range senses {
		counts[e.sense.SynsetID+"\x00"+store.Key(e.sense.Lemma)] = e.count
	}
	for i := range synsets {
		for j := range synsets[i].Lemmas {
			key := synsets[i].ID + "\x00" + store.Key(synsets[i].Lemmas[j].Name)
			synsets[i].Lemmas[j].Count = counts[key]
		}
	}
}

// parseExceptions reads lines: inflected_form base_form [base_form...]
func parseExceptions(r io.Reader, cat pos.Category) ([]store.Exception, error) {
	var excs []store.Exception
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		excs = append(excs, store.Exception{Category: cat, Form: fields[0], Bases: fields[1:]})
	}
	return excs, scanner.Err()
}
