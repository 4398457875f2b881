package qparse

import (
	aho_corasick "github.com/petar-dambovaliev/aho-corasick"
)

// BatchResolver builds one Aho-Corasick automaton over a vocabulary and
// reuses it to resolve every term in a batch of query lines in a single
// pass each, instead of paying a lexicon FST lookup per token. Grounded on
// pkg/qgram/query_verifier.go's QueryVerifier, which builds one
// AhoCorasick automaton from a query's clauses up front and scans once
// with IterOverlapping; here the roles are reversed — the vocabulary is
// the automaton's pattern set, and each query line is the text scanned
// against it, which is the right shape when a query batch is large
// relative to the vocabulary it draws from (e.g. re-scoring a query log).
type BatchResolver struct {
	ac    aho_corasick.AhoCorasick
	terms []string
	ids   []uint32
}

// NewBatchResolver builds an automaton matching exactly the given terms
// (case-sensitive, whole pattern only — callers normalize tokens to
// lowercase before building, matching pkg/qgram's NormalizeText
// convention).
func NewBatchResolver(terms []string, ids []uint32) *BatchResolver {
	builder := aho_corasick.NewAhoCorasickBuilder(aho_corasick.Opts{
		AsciiCaseInsensitive: false,
		MatchOnlyWholeWords:  false,
		MatchKind:            aho_corasick.StandardMatch,
		DFA:                  false,
	})
	ac := builder.Build(terms)
	return &BatchResolver{ac: ac, terms: terms, ids: ids}
}

// Resolve finds every vocabulary term occurring in text and returns their
// TermWeight list, with weight equal to occurrence count — the batch
// analogue of resolving one whitespace-split token at a time via a
// Resolver func. Uses IterOverlapping, the same one-pass scan
// pkg/qgram/query_verifier.go's VerifyCandidateAll performs over a
// document's fields.
func (r *BatchResolver) Resolve(text string) []TermWeight {
	counts := map[uint32]float32{}
	order := []uint32{}

	iter := r.ac.IterOverlapping(text)
	for {
		m := iter.Next()
		if m == nil {
			break
		}
		patIdx := m.Pattern()
		if patIdx >= len(r.ids) {
			continue
		}
		id := r.ids[patIdx]
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}

	out := make([]TermWeight, len(order))
	for i, id := range order {
		out[i] = TermWeight{TermID: id, Weight: counts[id]}
	}
	return out
}
