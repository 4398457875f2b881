// Package config carries the small set of typed knobs that flow from CLI
// flags into the retrieval core: scorer parameters and block-size policy.
// CLI parsing itself lives in cmd/*, built on the standard flag package in
// the style of kortschak-ins/cmd/ins/main.go (a custom flag.Usage, a
// repeatable flag.Value for multi-valued flags).
package config

import (
	"fmt"
	"strings"

	"github.com/pisa-go/pisa/pkg/scorer"
)

// Scoring mirrors scorer.Params plus the scorer's registry name, the
// knobs a cmd/* tool exposes as flags.
type Scoring struct {
	Name   string
	BM25B  float64
	BM25K1 float64
	PL2C   float64
	QLDMu  float64
}

// ToParams converts Scoring into scorer.Params.
func (s Scoring) ToParams() scorer.Params {
	return scorer.Params{
		Name:   s.Name,
		BM25B:  s.BM25B,
		BM25K1: s.BM25K1,
		PL2C:   s.PL2C,
		QLDMu:  s.QLDMu,
	}
}

// DefaultScoring returns the system defaults (BM25, k1=0.9, b=0.4).
func DefaultScoring() Scoring {
	p := scorer.DefaultParams("bm25")
	return Scoring{Name: p.Name, BM25B: p.BM25B, BM25K1: p.BM25K1, PL2C: p.PL2C, QLDMu: p.QLDMu}
}

// BlockPolicy selects between fixed-size and variable lambda-bounded
// WandData block construction.
type BlockPolicy struct {
	FixedSize int     // used when Lambda <= 0
	Lambda    float32 // > 0 selects variable blocks
}

// StringList is a repeatable flag.Value, the same shape as
// kortschak-ins/cmd/ins/main.go's sliceValue.
type StringList []string

func (s *StringList) String() string { return strings.Join(*s, ",") }

func (s *StringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ParseAlgorithm validates a --algorithm flag value against the fixed set
// pkg/query implements.
func ParseAlgorithm(name string) (string, error) {
	switch name {
	case "ranked_or", "ranked_and", "wand", "bmw", "mmw", "bmm", "taat", "taat_lazy":
		return name, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q", name)
	}
}
