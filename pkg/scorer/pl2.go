package scorer

import (
	"math"

	"github.com/pisa-go/pisa/pkg/cursor"
)

func init() {
	Register("pl2", func(p Params) Scorer { return pl2{c: p.PL2C} })
}

const log2e = 1 / math.Ln2

// pl2 implements the PL2 divergence-from-randomness model (Poisson model
// for randomness, Laplace succession for term frequency normalization,
// second normalization for document length), c=1 by default per
// original_source's ScorerParams.m_pl2_c.
type pl2 struct {
	c float64
}

func (s pl2) Name() string { return "pl2" }

func pl2Normalize(tf float64, dl, avgdl, c float64) float64 {
	if dl <= 0 {
		dl = 1
	}
	return tf * log2(1+c*avgdl/dl)
}

func pl2Score(tfn float64, lambda float64) float64 {
	if tfn <= 0 {
		return 0
	}
	if lambda <= 0 {
		lambda = 1e-9
	}
	term1 := tfn * log2(tfn/lambda)
	term2 := (lambda - tfn) * log2e
	term3 := 0.5 * log2(2*math.Pi*tfn)
	return (term1 + term2 + term3) / (tfn + 1)
}

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

func (s pl2) TermScorer(queryWeight float32, stats TermStats, docLen DocLenFunc) cursor.ScoreFunc {
	avgdl := stats.AvgDocLen
	if avgdl <= 0 {
		avgdl = 1
	}
	n := float64(stats.TotalDocs)
	if n <= 0 {
		n = 1
	}
	lambda := float64(stats.TotalTermFreq) / n
	c := s.c
	return func(docid uint32, freq uint32) float32 {
		dl := float64(docLen(docid))
		tfn := pl2Normalize(float64(freq), dl, avgdl, c)
		return float32(pl2Score(tfn, lambda)) * queryWeight
	}
}

func (s pl2) MaxScore(queryWeight float32, stats TermStats, maxTF uint32) float32 {
	avgdl := stats.AvgDocLen
	if avgdl <= 0 {
		avgdl = 1
	}
	n := float64(stats.TotalDocs)
	if n <= 0 {
		n = 1
	}
	lambda := float64(stats.TotalTermFreq) / n
	// Shortest document (dl=1) maximizes the length-normalized tf, which
	// in turn upper-bounds pl2Score for a fixed lambda.
	tfn := pl2Normalize(float64(maxTF), 1, avgdl, s.c)
	return float32(pl2Score(tfn, lambda)) * queryWeight
}
