package qnorm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/qnorm/pkg/qnorm/config"
	"github.com/cognicore/qnorm/pkg/qnorm/lemma"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

func TestEmbeddedStoreLemmatizesCommonWords(t *testing.T) {
	ctx := context.Background()
	st, err := EmbeddedStore(ctx)
	if err != nil {
		t.Fatalf("EmbeddedStore: %v", err)
	}
	defer st.Close()
	l := lemma.New(st)

	cases := []struct {
		word string
		cat  pos.Category
		want string
	}{
		{"running", pos.CategoryVerb, "run"},
		{"are", pos.CategoryVerb, "be"},
		{"went", pos.CategoryVerb, "go"},
		{"children", pos.CategoryNoun, "child"},
		{"bought", pos.CategoryVerb, "buy"},
		{"prices", pos.CategoryNoun, "price"},
		{"cameras", pos.CategoryNoun, "camera"},
		{"cheaper", pos.CategoryAdjective, "cheap"},
		{"laptop", pos.CategoryNoun, "laptop"},
		{"macbook", pos.CategoryNoun, "macbook"},
	}
	for _, tc := range cases {
		got, err := l.Lemmatize(ctx, tc.word, tc.cat)
		if err != nil {
			t.Fatalf("Lemmatize(%q): %v", tc.word, err)
		}
		if got != tc.want {
			t.Errorf("Lemmatize(%q, %s) = %q, want %q", tc.word, tc.cat, got, tc.want)
		}
	}
}

func TestOpenEmptyDatabaseWithoutLogger(t *testing.T) {
	settings := config.Settings{WordNetDB: filepath.Join(t.TempDir(), "empty.db")}

	p, err := Open(context.Background(), settings, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NERAvailable() {
		t.Error("NER should be unavailable when disabled")
	}
}
