package config

import "strings"

// Environment variables read by FromEnv.
const (
	EnvStoplist   = "QNORM_STOPLIST"
	EnvTaxonomy   = "QNORM_TAXONOMY"
	EnvSynonyms   = "QNORM_SYNONYMS"
	EnvVocabulary = "QNORM_VOCABULARY"
	EnvWordNetDB  = "QNORM_WORDNET_DB"
	EnvNER        = "QNORM_NER"
)

// Settings is the process-level configuration of the query processor.
type Settings struct {
	Loader Loader

	// WordNetDB is the sqlite lexical database path. Empty selects the
	// embedded starter dictionary held in memory.
	WordNetDB string

	// NEREnabled gates the named entity capability probe.
	NEREnabled bool
}

// FromEnv builds settings from environment lookups. getenv is usually
// os.Getenv.
func FromEnv(getenv func(string) string) Settings {
	return Settings{
		Loader: Loader{
			StoplistPath:   strings.TrimSpace(getenv(EnvStoplist)),
			TaxonomyPath:   strings.TrimSpace(getenv(EnvTaxonomy)),
			SynonymsPath:   strings.TrimSpace(getenv(EnvSynonyms)),
			VocabularyPath: strings.TrimSpace(getenv(EnvVocabulary)),
		},
		WordNetDB:  strings.TrimSpace(getenv(EnvWordNetDB)),
		NEREnabled: enabled(getenv(EnvNER)),
	}
}

func enabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "off", "false", "0", "no", "disabled":
		return false
	}
	return true
}
