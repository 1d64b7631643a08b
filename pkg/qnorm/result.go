package qnorm

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/cognicore/qnorm/pkg/qnorm/entities"
	"github.com/cognicore/qnorm/pkg/qnorm/ner"
	"github.com/cognicore/qnorm/pkg/qnorm/pos"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NERInstallHint tells users how to get named entity recognition back.
const NERInstallHint = "To enable full named entity recognition, set QNORM_NER=on and make sure the prose entity model loads."

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SentenceResult holds every stage output for one sentence.
type SentenceResult struct {
	OriginalSentence string            `json:"original_sentence"`
	Tokens           []string          `json:"tokens"`
	POSTags          []pos.TaggedToken `json:"pos_tags"`
	FilteredTokens   []string          `json:"filtered_tokens"`
	Lemmatized       []string          `json:"lemmatized"`
	NamedEntities    []ner.NamedEntity `json:"named_entities"`
	NounPhrases      []string          `json:"noun_phrases"`
	Expanded         []string          `json:"expanded_with_synonyms"`
	Entities         entities.Bundle   `json:"entities"`
	ProcessedQuery   string            `json:"processed_query"`
	NERAvailable     bool              `json:"ner_available"`
}

// QueryResult is the outcome of processing one query. A failed query
// carries a Message and no sentences.
type QueryResult struct {
	// QueryID correlates the result with log records. It is not serialized.
	QueryID string

	OriginalQuery  string
	Sentences      []SentenceResult
	Status         string
	Message        string
	NERAvailable   bool
	NERInstallHint *string
}

type successResponse struct {
	OriginalQuery  string           `json:"original_query"`
	Sentences      []SentenceResult `json:"sentences"`
	Status         string           `json:"status"`
	NERAvailable   bool             `json:"ner_available"`
	NERInstallHint *string          `json:"ner_install_hint"`
}

type errorResponse struct {
	OriginalQuery  string  `json:"original_query"`
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	NERAvailable   bool    `json:"ner_available"`
	NERInstallHint *string `json:"ner_install_hint"`
}

// Response returns the document serialized for r: the success shape with
// its sentence list, or the error shape with a message and no sentences.
func (r QueryResult) Response() any {
	if r.Status == StatusError {
		return errorResponse{
			OriginalQuery:  r.OriginalQuery,
			Status:         r.Status,
			Message:        r.Message,
			NERAvailable:   r.NERAvailable,
			NERInstallHint: r.NERInstallHint,
		}
	}
	sentences := r.Sentences
	if sentences == nil {
		sentences = []SentenceResult{}
	}
	return successResponse{
		OriginalQuery:  r.OriginalQuery,
		Sentences:      sentences,
		Status:         r.Status,
		NERAvailable:   r.NERAvailable,
		NERInstallHint: r.NERInstallHint,
	}
}

// MarshalJSON encodes Response.
func (r QueryResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Response())
}

// OK reports whether the query was processed successfully.
func (r QueryResult) OK() bool { return r.Status == StatusSuccess }
