// Package config loads the word lists and tables the query processor runs
// on. Every resource has an embedded default so the processor works without
// any files on disk.
package config

import (
	"embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/qnorm/pkg/qnorm/internalerr"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// Default file names inside the embedded defaults directory.
const (
	DefaultStoplist   = "defaults/stoplist.yaml"
	DefaultTaxonomy   = "defaults/taxonomy.yaml"
	DefaultSynonyms   = "defaults/synonyms.yaml"
	DefaultVocabulary = "defaults/vocabulary.yaml"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// Taxonomy represents the domain entity categories, in match order.
type Taxonomy struct {
	DomainEntities []Category `yaml:"domain_entities"`
}

// Category is one named group of domain terms.
type Category struct {
	Category string   `yaml:"category"`
	Terms    []string `yaml:"terms"`
}

// Vocabulary holds the closed word sets and limits used across pipeline
// stages.
type Vocabulary struct {
	QuestionWords      []string `yaml:"question_words" validate:"required,min=1,dive,required"`
	ActionVerbs        []string `yaml:"action_verbs" validate:"required,min=1,dive,required"`
	Intensifiers       []string `yaml:"intensifiers" validate:"dive,required"`
	Pronouns           []string `yaml:"pronouns" validate:"dive,required"`
	Negators           []string `yaml:"negators" validate:"dive,required"`
	IgnoreList         []string `yaml:"ignore_list" validate:"dive,required"`
	HelperStops        []string `yaml:"helper_stops" validate:"dive,required"`
	SkipTags           []string `yaml:"skip_tags" validate:"dive,required"`
	DefaultAction      string   `yaml:"default_action" validate:"required"`
	SynonymLimit       int      `yaml:"synonym_limit" validate:"gte=0"`
	DomainSynonymLimit int      `yaml:"domain_synonym_limit" validate:"gte=0"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStoplist(data)
}

// ParseStoplist decodes stoplist YAML.
func ParseStoplist(data []byte) (*Stoplist, error) {
	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: stoplist: %v", internalerr.ErrInvalidConfig, err)
	}
	return &sl, nil
}

// LoadTaxonomy loads domain categories from a YAML file
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTaxonomy(data)
}

// ParseTaxonomy decodes taxonomy YAML. Categories without a name are
// rejected.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("%w: taxonomy: %v", internalerr.ErrInvalidConfig, err)
	}
	for i, c := range tax.DomainEntities {
		if c.Category == "" {
			return nil, fmt.Errorf("%w: taxonomy: category %d has no name", internalerr.ErrInvalidConfig, i)
		}
	}
	return &tax, nil
}

// LoadVocabulary loads and validates the vocabulary from a YAML file
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseVocabulary(data)
}

// ParseVocabulary decodes and validates vocabulary YAML.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: vocabulary: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

var validate = validator.New()

// Validate checks required sets and limits.
func (v *Vocabulary) Validate() error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: vocabulary: %v", internalerr.ErrInvalidConfig, err)
	}
	return nil
}

func readDefault(name string) []byte {
	data, err := defaults.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("config: embedded %s missing: %v", name, err))
	}
	return data
}
