package qnorm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/qnorm/pkg/qnorm/config"
	"github.com/cognicore/qnorm/pkg/qnorm/ner"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// lookupTagger tags from a fixed table; unknown words are NN.
type lookupTagger struct {
	tags  map[string]pos.Tag
	err   error
	panic bool
}

func (l lookupTagger) Tag(tokens []string) ([]pos.TaggedToken, error) {
	if l.panic {
		panic("tagger model corrupted")
	}
	if l.err != nil {
		return nil, l.err
	}
	out := make([]pos.TaggedToken, len(tokens))
	for i, tok := range tokens {
		tag, ok := l.tags[tok]
		if !ok {
			tag = pos.Noun
		}
		out[i] = pos.TaggedToken{Word: tok, Tag: tag}
	}
	return out, nil
}

var testTags = map[string]pos.Tag{
	"can":    pos.Modal,
	"you":    pos.Pronoun,
	"show":   pos.Verb,
	"me":     pos.Pronoun,
	"prices": pos.NounPlural,
	"?":      pos.Period,
	"i":      pos.Pronoun,
	"need":   "VBP",
	"a":      pos.Determiner,
	"cheap":  pos.Adjective,
	"very":   pos.Adverb,
	"what":   "WP",
	"is":     "VBZ",
	"the":    pos.Determiner,
	"dell":   pos.ProperNoun,
}

// fakeRecognizer labels configured words and counts calls.
type fakeRecognizer struct {
	probeErr error
	err      error
	labels   map[string]string
	calls    int
}

func (f *fakeRecognizer) Probe() error { return f.probeErr }

func (f *fakeRecognizer) Recognize(tagged []pos.TaggedToken) ([]ner.Node, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var mentions []ner.Mention
	for _, tt := range tagged {
		if label, ok := f.labels[tt.Word]; ok {
			mentions = append(mentions, ner.Mention{Text: tt.Word, Label: label})
		}
	}
	return ner.BuildTree(tagged, mentions), nil
}

func newTestProcessor(t *testing.T, tagger pos.Tagger, rec ner.Recognizer) *Processor {
	t.Helper()
	comp, err := (&config.Loader{}).Load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	st, err := EmbeddedStore(context.Background())
	if err != nil {
		t.Fatalf("embedded store: %v", err)
	}
	p := Assemble(comp, st, tagger, rec, nil)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestProcessLaptopPrices(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{tags: testTags}, &fakeRecognizer{})

	res := p.Process(context.Background(), "Can you show me laptop prices?")
	if !res.OK() {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if res.QueryID == "" {
		t.Error("expected a query id")
	}
	if len(res.Sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(res.Sentences))
	}

	s := res.Sentences[0]
	if s.OriginalSentence != "can you show me laptop prices?" {
		t.Errorf("sentence = %q", s.OriginalSentence)
	}
	assertStrings(t, "tokens", s.Tokens, []string{"can", "you", "show", "me", "laptop", "prices", "?"})
	assertStrings(t, "filtered", s.FilteredTokens, []string{"show", "laptop", "prices", "?"})
	assertStrings(t, "lemmatized", s.Lemmatized, []string{"show", "laptop", "price", "?"})
	assertStrings(t, "noun phrases", s.NounPhrases, []string{"laptop prices"})
	assertStrings(t, "expanded", s.Expanded, []string{
		"show", "demonstrate", "prove", "exhibit",
		"laptop", "notebook", "computer",
		"price", "cost", "terms", "damage",
		"?",
	})

	if len(s.Entities.DomainEntities) != 2 ||
		s.Entities.DomainEntities[0].Text != "laptop" || s.Entities.DomainEntities[0].Type != "product" ||
		s.Entities.DomainEntities[1].Text != "price" || s.Entities.DomainEntities[1].Type != "tech" {
		t.Errorf("domain entities = %+v", s.Entities.DomainEntities)
	}
	if s.ProcessedQuery != "show laptop prices" {
		t.Errorf("processed query = %q", s.ProcessedQuery)
	}
	if !s.NERAvailable || !res.NERAvailable || res.NERInstallHint != nil {
		t.Error("NER should be available without a hint")
	}
}

func TestProcessCheapMacbook(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{tags: testTags}, &fakeRecognizer{})

	res := p.Process(context.Background(), "I need a cheap macbook")
	if !res.OK() || len(res.Sentences) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	s := res.Sentences[0]
	assertStrings(t, "filtered", s.FilteredTokens, []string{"need", "cheap", "macbook"})
	assertStrings(t, "all entities", s.Entities.AllEntities, []string{"cheap macbook", "cheap"})
	if s.ProcessedQuery != "need cheap macbook" {
		t.Errorf("processed query = %q", s.ProcessedQuery)
	}
}

func TestProcessInvariants(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{tags: testTags}, &fakeRecognizer{})

	queries := []string{
		"what is the price? show me laptops",
		"I need a very cheap laptop, please!",
		"Compare 2 phones",
	}
	for _, q := range queries {
		res := p.Process(context.Background(), q)
		if !res.OK() {
			t.Errorf("%q: %s", q, res.Message)
			continue
		}
		for _, s := range res.Sentences {
			if len(s.POSTags) != len(s.Tokens) {
				t.Errorf("%q: %d tags for %d tokens", q, len(s.POSTags), len(s.Tokens))
			}
			if len(s.FilteredTokens) > len(s.Tokens) {
				t.Errorf("%q: filtering grew the sentence", q)
			}
			if len(s.Lemmatized) != len(s.FilteredTokens) {
				t.Errorf("%q: %d lemmas for %d filtered tokens", q, len(s.Lemmatized), len(s.FilteredTokens))
			}
			if len(s.Expanded) < len(s.Lemmatized) {
				t.Errorf("%q: expansion dropped tokens", q)
			}
			seen := map[string]bool{}
			for _, e := range s.Entities.AllEntities {
				if seen[e] {
					t.Errorf("%q: duplicate entity %q", q, e)
				}
				seen[e] = true
			}
		}
	}

	res := p.Process(context.Background(), "what is the price? show me laptops")
	if len(res.Sentences) != 2 {
		t.Errorf("expected 2 sentences, got %d", len(res.Sentences))
	}
}

func TestProcessEmptyQuery(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{tags: testTags}, &fakeRecognizer{})

	for _, q := range []string{"", "   ", "!!!"} {
		res := p.Process(context.Background(), q)
		if !res.OK() {
			t.Errorf("%q: expected success, got %q", q, res.Message)
		}
		if res.Sentences == nil || len(res.Sentences) != 0 {
			t.Errorf("%q: expected empty sentence list, got %v", q, res.Sentences)
		}
	}

	data, err := json.Marshal(p.Process(context.Background(), ""))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"sentences":[]`) {
		t.Errorf("empty query should serialize an empty list: %s", data)
	}
}

func TestProcessNamedEntities(t *testing.T) {
	rec := &fakeRecognizer{labels: map[string]string{"dell": ner.Organization}}
	p := newTestProcessor(t, lookupTagger{tags: testTags}, rec)

	res := p.Process(context.Background(), "I need a cheap dell")
	if !res.OK() {
		t.Fatalf("unexpected failure: %s", res.Message)
	}
	s := res.Sentences[0]
	if len(s.NamedEntities) != 1 || s.NamedEntities[0] != (ner.NamedEntity{Text: "dell", Type: ner.Organization}) {
		t.Errorf("named entities = %+v", s.NamedEntities)
	}
	if len(s.Entities.AllEntities) == 0 || s.Entities.AllEntities[0] != "dell" {
		t.Errorf("named entity should lead all entities: %v", s.Entities.AllEntities)
	}
	if s.ProcessedQuery != "need cheap dell dell" {
		t.Errorf("processed query = %q", s.ProcessedQuery)
	}
}

func TestNERCapabilityFailureIsMonotone(t *testing.T) {
	rec := &fakeRecognizer{err: &ner.CapabilityError{Err: errors.New("model missing")}}
	p := newTestProcessor(t, lookupTagger{tags: testTags}, rec)

	if !p.NERAvailable() {
		t.Fatal("probe succeeded, NER should start available")
	}

	res := p.Process(context.Background(), "show me laptops. compare phones")
	if !res.OK() {
		t.Fatalf("capability failure must not fail the query: %s", res.Message)
	}
	if p.NERAvailable() || res.NERAvailable {
		t.Error("NER should be disabled after a capability failure")
	}
	if res.NERInstallHint == nil || *res.NERInstallHint != NERInstallHint {
		t.Error("expected the install hint once NER is disabled")
	}
	if rec.calls != 1 {
		t.Errorf("recognizer should be skipped after failing, got %d calls", rec.calls)
	}

	rec.err = nil
	p.Process(context.Background(), "show me laptops")
	if p.NERAvailable() {
		t.Error("NER must never come back once disabled")
	}
	if rec.calls != 1 {
		t.Errorf("recognizer called again after being disabled: %d calls", rec.calls)
	}
}

func TestNERProbeFailure(t *testing.T) {
	rec := &fakeRecognizer{probeErr: &ner.CapabilityError{}}
	p := newTestProcessor(t, lookupTagger{tags: testTags}, rec)

	if p.NERAvailable() {
		t.Error("failed probe should leave NER unavailable")
	}
	res := p.Process(context.Background(), "show me laptops")
	if rec.calls != 0 {
		t.Error("recognizer should not run after a failed probe")
	}
	if res.NERInstallHint == nil {
		t.Error("expected an install hint")
	}
}

func TestNERDisabled(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{tags: testTags}, nil)

	if p.NERAvailable() {
		t.Error("no recognizer means no NER")
	}
	res := p.Process(context.Background(), "show me laptops")
	if !res.OK() || len(res.Sentences[0].NamedEntities) != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRecognizerRuntimeErrorFailsQuery(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("bad input")}
	p := newTestProcessor(t, lookupTagger{tags: testTags}, rec)

	res := p.Process(context.Background(), "show me laptops")
	if res.OK() {
		t.Fatal("expected an error result")
	}
	if !p.NERAvailable() {
		t.Error("a non-capability error should not disable NER")
	}
}

func TestProcessStageFailure(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{err: errors.New("tagger offline")}, &fakeRecognizer{})

	res := p.Process(context.Background(), "show me laptops. compare phones")
	if res.Status != StatusError {
		t.Fatalf("expected error status, got %q", res.Status)
	}
	if !strings.Contains(res.Message, "tagger offline") {
		t.Errorf("message = %q", res.Message)
	}
	if res.Sentences != nil {
		t.Error("error results must not carry sentences")
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "sentences") {
		t.Errorf("error JSON must not contain sentences: %s", out)
	}
	for _, field := range []string{`"status":"error"`, `"message":`, `"ner_available":true`, `"ner_install_hint":null`} {
		if !strings.Contains(out, field) {
			t.Errorf("error JSON missing %s: %s", field, out)
		}
	}
}

func TestProcessRecoversPanics(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{panic: true}, &fakeRecognizer{})

	res := p.Process(context.Background(), "show me laptops")
	if res.Status != StatusError || !strings.Contains(res.Message, "tagger model corrupted") {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestProcessCanceledContext(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{tags: testTags}, &fakeRecognizer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if res := p.Process(ctx, "show me laptops"); res.OK() {
		t.Error("expected an error result for a canceled context")
	}
}

func TestSentenceJSONShape(t *testing.T) {
	p := newTestProcessor(t, lookupTagger{tags: testTags}, &fakeRecognizer{})

	data, err := json.Marshal(p.Process(context.Background(), "show me laptop prices"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, field := range []string{
		`"original_query":"show me laptop prices"`,
		`"status":"success"`,
		`"pos_tags":[["show","VB"]`,
		`"named_entities":[]`,
		`"expanded_with_synonyms":[`,
		`"domain_entities":[{"text":"laptop","type":"product"}`,
		`"processed_query":"show laptop prices"`,
		`"ner_install_hint":null`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("JSON missing %s: %s", field, out)
		}
	}
}

func assertStrings(t *testing.T, name string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}
