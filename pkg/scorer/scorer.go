// Package scorer implements the BM25, QL-Dirichlet, PL2, DPH and Quantized
// scoring functions, each registered under a name and constructed from
// Params, mirroring original_source's scorer::from_params factory
// (include/pisa/scorer/scorer.hpp): a name-keyed registry of constructor
// closures in place of the C++ codebase's macro sweep over scorer template
// instantiations.
package scorer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// Params carries the tunable constants for every scorer, matching
// original_source's ScorerParams struct field-for-field (defaults taken
// directly from it: BM25 b=0.4 k1=0.9, PL2 c=1, QLD mu=1000).
type Params struct {
	Name     string
	BM25B    float64
	BM25K1   float64
	PL2C     float64
	QLDMu    float64
	DocCount int // not read by any registered scorer; quantized uses a fixed 255 levels
}

// DefaultParams returns the original system's default constants.
func DefaultParams(name string) Params {
	return Params{Name: name, BM25B: 0.4, BM25K1: 0.9, PL2C: 1.0, QLDMu: 1000}
}

// TermStats is the per-term collection statistics a scorer needs to build
// a query_term_weight / term_scorer closure: document frequency, total
// document count, total term frequency across the collection, and average
// document length.
type TermStats struct {
	DocFreq       uint64
	TotalDocs     uint64
	TotalTermFreq uint64
	AvgDocLen     float64
}

// DocLenFunc resolves a docid to its document length (field length in
// tokens), read from the .sizes file at index-open time.
type DocLenFunc func(docid uint32) uint32

// Scorer builds per-term scoring closures. TermScorer's queryWeight is the
// query-side weight for repeated/boosted terms (normally 1); stats and
// docLen supply the collection- and document-level statistics the formula
// needs.
type Scorer interface {
	Name() string
	TermScorer(queryWeight float32, stats TermStats, docLen DocLenFunc) cursor.ScoreFunc
	// MaxScore returns a safe score upper bound for a term with the given
	// stats, used by pkg/wand to build per-term/per-block bounds. It must
	// never underestimate the true maximum score any posting in the term
	// could achieve.
	MaxScore(queryWeight float32, stats TermStats, maxTF uint32) float32
}

var (
	mu       sync.RWMutex
	registry = map[string]func(Params) Scorer{}
)

// Register adds a named scorer constructor to the registry.
func Register(name string, ctor func(Params) Scorer) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ctor
}

// Get constructs the scorer registered under params.Name.
func Get(params Params) (Scorer, error) {
	mu.RLock()
	ctor, ok := registry[params.Name]
	mu.RUnlock()
	if !ok {
		return nil, pisaerr.Format("scorer", fmt.Errorf("%w: %q", pisaerr.ErrUnknownScorer, params.Name))
	}
	return ctor(params), nil
}

// Names returns the sorted set of registered scorer names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
