// Package build implements the forward-index construction and inversion
// pipeline sitting in front of the retrieval core: parsing documents,
// tokenizing, building a forward index (docid -> term occurrences), then
// inverting it into the per-term postings pkg/index compiles into a
// queryable index. Concurrency follows original_source's bounded task-
// group model (include/pisa/forward_index_builder.hpp's batched,
// worker-pool construction) via golang.org/x/sync/errgroup — no example
// repo in the pack demonstrates this pattern directly, so it is built
// fresh in the idiomatic Go shape for bounded-concurrency batch work.
package build

import (
	"strings"

	"github.com/orsinium-labs/stopwords"
)

// Tokenizer splits and normalizes document text into index terms,
// dropping stopwords. Grounded on pkg/qgram's NormalizeText (lowercase
// normalization) generalized from gram-extraction to whole-word
// tokenization, plus the direct dependency on
// github.com/orsinium-labs/stopwords (otherwise only reachable from the
// deleted pkg/dafsa notes-app module).
type Tokenizer struct {
	stop stopwords.Stopwords
}

// NewTokenizer builds a Tokenizer using the English stopword list; pass a
// different stopwords.Stopwords for other languages.
func NewTokenizer(stop stopwords.Stopwords) *Tokenizer {
	return &Tokenizer{stop: stop}
}

// DefaultTokenizer returns a Tokenizer using the bundled English list.
func DefaultTokenizer() *Tokenizer {
	return NewTokenizer(stopwords.EN)
}

// Tokenize lowercases text, splits on non-letter/digit runes, and drops
// stopwords and empty tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	text = strings.ToLower(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t.stop.Check(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}
