// Package qparse parses query input lines ("id: term term ...", optionally
// with integer term ids instead of raw tokens) into resolved term-id
// queries ready for pkg/query. Grounded on pkg/qgram/query.go's ParseQuery
// (quote-aware clause splitting via a small state machine), generalized
// from q-gram clauses to PISA's flat weighted-term-list query shape.
package qparse

import (
	"strconv"
	"strings"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// TermWeight is one resolved query term: its internal id and a query-side
// weight (almost always 1, but repeated or explicitly boosted terms carry
// a higher value).
type TermWeight struct {
	TermID uint32
	Weight float32
}

// Query is one fully parsed and term-resolved query line.
type Query struct {
	ID    string
	Terms []TermWeight
}

// Resolver maps a token (term text) to its internal id, e.g. *lexicon.Lexicon.ID.
type Resolver func(token string) (uint32, bool)

// ParseLine parses one "[id:] token token ..." line. An optional leading
// "id:" names the query (used verbatim in pkg/trecfmt output); tokens
// after it are split on whitespace, normalized to lowercase (matching
// pkg/qgram's NormalizeText), resolved via resolve, and accumulated into
// TermWeight with repeats increasing Weight.
//
// Tokens resolve returns false for are dropped silently: ParseLine neither
// returns pisaerr.ErrTermNotFound for them nor logs them, and the query
// goes on with the remaining terms; if no token resolves at all,
// ParseLine returns pisaerr.ErrEmptyQuery.
func ParseLine(line string, resolve Resolver) (Query, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Query{}, pisaerr.Format("query line", pisaerr.ErrEmptyQuery)
	}

	id, rest := splitID(line)

	weights := map[uint32]float32{}
	order := []uint32{}
	for _, tok := range strings.Fields(rest) {
		tok = strings.ToLower(tok)
		termID, ok := resolve(tok)
		if !ok {
			continue // dropped without an error or a log line, not fatal
		}
		if _, seen := weights[termID]; !seen {
			order = append(order, termID)
		}
		weights[termID]++
	}
	if len(order) == 0 {
		return Query{ID: id}, pisaerr.Format("query "+id, pisaerr.ErrEmptyQuery)
	}

	q := Query{ID: id, Terms: make([]TermWeight, len(order))}
	for i, termID := range order {
		q.Terms[i] = TermWeight{TermID: termID, Weight: weights[termID]}
	}
	return q, nil
}

// splitID splits a leading "id:" prefix from the rest of the line. If no
// colon is present, id is assigned from the running counter the caller
// tracks separately (an empty id here signals "caller must assign one").
func splitID(line string) (id, rest string) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", line
	}
	// Only treat the colon as an id separator if what precedes it has no
	// whitespace — otherwise it's punctuation inside the query text.
	prefix := line[:colon]
	if strings.ContainsAny(prefix, " \t") {
		return "", line
	}
	return prefix, line[colon+1:]
}

// ParseIntegerLine parses a line of pre-tokenized integer term ids
// ("id: 14 87 203"), the alternate query-input mode where terms are
// already resolved to internal ids by an upstream tool.
func ParseIntegerLine(line string) (Query, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Query{}, pisaerr.Format("query line", pisaerr.ErrEmptyQuery)
	}
	id, rest := splitID(line)

	fields := strings.Fields(rest)
	terms := make([]TermWeight, 0, len(fields))
	seen := map[uint32]int{}
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return Query{}, pisaerr.Format("query "+id, pisaerr.ErrParseError)
		}
		tid := uint32(n)
		if idx, ok := seen[tid]; ok {
			terms[idx].Weight++
			continue
		}
		seen[tid] = len(terms)
		terms = append(terms, TermWeight{TermID: tid, Weight: 1})
	}
	if len(terms) == 0 {
		return Query{ID: id}, pisaerr.Format("query "+id, pisaerr.ErrEmptyQuery)
	}
	return Query{ID: id, Terms: terms}, nil
}
