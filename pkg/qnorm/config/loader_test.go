package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderAllEmpty(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should fall back to defaults: %v", err)
	}

	if !comp.Stoplist.IsStop("the") || !comp.Stoplist.IsStop("can") {
		t.Error("default stoplist should contain English stopwords")
	}
	if comp.Stoplist.IsStop("laptop") {
		t.Error("laptop should not be a stopword")
	}

	if got := comp.Taxonomy.Categories("laptop"); len(got) != 1 || got[0] != "product" {
		t.Errorf("laptop categories = %v, want [product]", got)
	}
	if got := comp.Taxonomy.Names(); len(got) != 2 || got[0] != "product" || got[1] != "tech" {
		t.Errorf("taxonomy names = %v", got)
	}

	variants, ok := comp.Synonyms.Synonyms("buy")
	if !ok || len(variants) != 4 || variants[0] != "purchase" {
		t.Errorf("buy synonyms = %v, %v", variants, ok)
	}

	if comp.Vocabulary == nil || len(comp.Vocabulary.ActionVerbs) != 15 {
		t.Errorf("default vocabulary not loaded: %+v", comp.Vocabulary)
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	loader := Loader{StoplistPath: "/nonexistent/stoplist.yaml"}

	_, err := loader.Load()
	if err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}

func TestLoaderNonExistentTaxonomy(t *testing.T) {
	loader := Loader{TaxonomyPath: "/nonexistent/taxonomy.yaml"}

	_, err := loader.Load()
	if err == nil {
		t.Error("Should error on nonexistent taxonomy")
	}
}

func TestLoaderNonExistentSynonyms(t *testing.T) {
	loader := Loader{SynonymsPath: "/nonexistent/synonyms.yaml"}

	_, err := loader.Load()
	if err == nil {
		t.Error("Should error on nonexistent synonyms")
	}
}

func TestLoaderInvalidVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	if err := os.WriteFile(path, []byte("question_words: [what]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{VocabularyPath: path}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on a vocabulary without action verbs")
	}
}

func TestLoaderValidFiles(t *testing.T) {
	tmpDir := t.TempDir()

	stoplistPath := filepath.Join(tmpDir, "stoplist.yaml")
	if err := os.WriteFile(stoplistPath, []byte("terms:\n  - foo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	taxonomyPath := filepath.Join(tmpDir, "taxonomy.yaml")
	taxonomyContent := `domain_entities:
  - category: fruit
    terms: [Apple, pear]
`
	if err := os.WriteFile(taxonomyPath, []byte(taxonomyContent), 0644); err != nil {
		t.Fatal(err)
	}

	synonymsPath := filepath.Join(tmpDir, "synonyms.yaml")
	synonymsContent := `synonyms:
  - canonical: apple
    variants: [pomme]
`
	if err := os.WriteFile(synonymsPath, []byte(synonymsContent), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{
		StoplistPath: stoplistPath,
		TaxonomyPath: taxonomyPath,
		SynonymsPath: synonymsPath,
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !comp.Stoplist.IsStop("foo") || comp.Stoplist.IsStop("the") {
		t.Error("custom stoplist should replace the default")
	}
	if got := comp.Taxonomy.Categories("apple"); len(got) != 1 || got[0] != "fruit" {
		t.Errorf("apple categories = %v, want [fruit]", got)
	}
	if _, ok := comp.Synonyms.Synonyms("buy"); ok {
		t.Error("custom synonyms should replace the default table")
	}
	if comp.Vocabulary.DefaultAction != "request" {
		t.Error("vocabulary should fall back to the default")
	}
}
