package wordnet

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/cognicore/qnorm/pkg/qnorm/internalerr"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
	"github.com/cognicore/qnorm/pkg/qnorm/store/memstore"
)

func testDict() fstest.MapFS {
	return fstest.MapFS{
		"data.noun": {Data: []byte(
			"  1 license header line\n" +
				"  2 another header line\n" +
				"13303315 21 n 03 price 0 terms 0 damage 0 001 @ 13275847 n 0000 | the amount of money needed to purchase something  \n" +
				"05145118 07 n 03 monetary_value 0 price 0 cost 0 000 | the property of having material worth  \n")},
		"data.adj": {Data: []byte(
			"00933599 00 a 02 cheap 0 inexpensive 0 000 | relatively low in price  \n" +
				"01500000 00 s 01 galore(ip) 0 000 | in great numbers  \n")},
		"index.sense": {Data: []byte(
			"price%1:21:00:: 13303315 1 21\n" +
				"price%1:07:00:: 05145118 2 5\n" +
				"cost%1:07:00:: 05145118 3 6\n" +
				"terms%1:21:00:: 13303315 1 3\n" +
				"galore%5:00:00:abundant:00 01500000 1 0\n")},
		"noun.exc": {Data: []byte("mice mouse\nfeet foot\n")},
	}
}

func TestParse(t *testing.T) {
	ds, err := Parse(testDict())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(ds.Synsets) != 4 {
		t.Fatalf("Expected 4 synsets, got %d", len(ds.Synsets))
	}

	price := ds.Synsets[0]
	if price.ID != "13303315-n" || price.Category != pos.CategoryNoun {
		t.Errorf("unexpected synset %+v", price)
	}
	want := []store.Lemma{{Name: "price", Count: 21}, {Name: "terms", Count: 3}, {Name: "damage", Count: 0}}
	if !reflect.DeepEqual(price.Lemmas, want) {
		t.Errorf("Expected %v, got %v", want, price.Lemmas)
	}

	sat := ds.Synsets[3]
	if sat.ID != "01500000-a" || sat.Category != pos.CategoryAdjective {
		t.Errorf("satellite should fold into adjectives, got %+v", sat)
	}
	if sat.Lemmas[0].Name != "galore" {
		t.Errorf("syntactic marker should be stripped, got %q", sat.Lemmas[0].Name)
	}

	if len(ds.Senses) != 5 {
		t.Errorf("Expected 5 senses, got %d", len(ds.Senses))
	}
	if ds.Senses[4].SynsetID != "01500000-a" {
		t.Errorf("satellite sense should point at the adjective synset, got %q", ds.Senses[4].SynsetID)
	}

	if len(ds.Exceptions) != 2 || ds.Exceptions[0].Form != "mice" || ds.Exceptions[0].Bases[0] != "mouse" {
		t.Errorf("unexpected exceptions %+v", ds.Exceptions)
	}
}

func TestParseWordCountIsHex(t *testing.T) {
	words := ""
	for i := 0; i < 16; i++ {
		words += "w" + string(rune('a'+i)) + " 0 "
	}
	fsys := fstest.MapFS{"data.noun": {Data: []byte("00000001 03 n 10 " + words + "000 | sixteen words\n")}}

	ds, err := Parse(fsys)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ds.Synsets[0].Lemmas) != 16 {
		t.Errorf("Expected 16 lemmas, got %d", len(ds.Synsets[0].Lemmas))
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(fstest.MapFS{}); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("empty dict should be ErrNotFound, got %v", err)
	}

	bad := fstest.MapFS{"data.noun": {Data: []byte("00000001 03 x 01 word 0 000 | bad type\n")}}
	if _, err := Parse(bad); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("unknown synset type should be ErrInvalidInput, got %v", err)
	}

	short := fstest.MapFS{"data.noun": {Data: []byte("00000001 03 n 03 word 0 000 | too few words\n")}}
	if _, err := Parse(short); err == nil {
		t.Error("truncated word list should fail")
	}

	sense := fstest.MapFS{
		"data.noun":   {Data: []byte("00000001 03 n 01 word 0 000 | ok\n")},
		"index.sense": {Data: []byte("word 00000001 1 0\n")},
	}
	if _, err := Parse(sense); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("malformed sense key should be ErrInvalidInput, got %v", err)
	}
}

func TestEmbeddedDictionary(t *testing.T) {
	ds, err := Parse(Embedded())
	if err != nil {
		t.Fatalf("Parse(Embedded()): %v", err)
	}

	ctx := context.Background()
	st := memstore.New()
	if err := st.Import(ctx, ds); err != nil {
		t.Fatalf("Import: %v", err)
	}

	for _, tc := range []struct {
		lemma string
		cat   pos.Category
	}{
		{"laptop", pos.CategoryNoun},
		{"price", pos.CategoryNoun},
		{"show", pos.CategoryVerb},
		{"need", pos.CategoryVerb},
		{"cheap", pos.CategoryAdjective},
		{"quickly", pos.CategoryAdverb},
	} {
		if ok, _ := st.HasLemma(ctx, tc.lemma, tc.cat); !ok {
			t.Errorf("embedded dictionary should contain %s/%s", tc.lemma, tc.cat)
		}
	}

	syns, _ := st.Synsets(ctx, "price", pos.CategoryNoun)
	if len(syns) != 2 || syns[0].ID != "13303315-n" {
		t.Errorf("price senses out of order: %+v", syns)
	}

	bases, _ := st.Exceptions(ctx, "bought", pos.CategoryVerb)
	if !reflect.DeepEqual(bases, []string{"buy"}) {
		t.Errorf("Expected bought -> buy, got %v", bases)
	}
}
