package scorer

import (
	"math"

	"github.com/pisa-go/pisa/pkg/cursor"
)

func init() {
	Register("dph", func(Params) Scorer { return dph{} })
}

// dph implements the parameter-free Divergence from Randomness hyper-
// geometric model (Amati's DPH), which original_source exposes with no
// tunable ScorerParams fields — unlike BM25/PL2/QLD it needs none.
type dph struct{}

func (s dph) Name() string { return "dph" }

func dphScore(tf, dl, avgdl, totalTermFreq, totalDocs float64) float64 {
	if dl <= 0 {
		dl = 1
	}
	if tf <= 0 {
		return 0
	}
	tfn := tf * log2(1+avgdl/dl)
	norm := 1.0 - tfn/(tfn+1)
	f := totalTermFreq / totalDocs
	if f <= 0 {
		f = 1e-9
	}
	term1 := tfn * log2(tfn*totalDocs/f)
	term2 := 0.5 * log2(2*math.Pi*tfn*norm)
	return norm * norm / (tfn + 1) * (term1 + term2)
}

func (s dph) TermScorer(queryWeight float32, stats TermStats, docLen DocLenFunc) cursor.ScoreFunc {
	avgdl := stats.AvgDocLen
	if avgdl <= 0 {
		avgdl = 1
	}
	n := float64(stats.TotalDocs)
	if n <= 0 {
		n = 1
	}
	f := float64(stats.TotalTermFreq)
	return func(docid uint32, freq uint32) float32 {
		dl := float64(docLen(docid))
		return float32(dphScore(float64(freq), dl, avgdl, f, n)) * queryWeight
	}
}

func (s dph) MaxScore(queryWeight float32, stats TermStats, maxTF uint32) float32 {
	avgdl := stats.AvgDocLen
	if avgdl <= 0 {
		avgdl = 1
	}
	n := float64(stats.TotalDocs)
	if n <= 0 {
		n = 1
	}
	f := float64(stats.TotalTermFreq)
	// dphScore is not monotone in tfn: its 1/(tfn+1)^3 factor shrinks
	// faster than the log terms grow, so evaluating it at maxTF can
	// underestimate. Bound the two summands separately instead, using
	// tfn/(tfn+1)^3 <= 4/27 and 1/(tfn+1)^3 <= 1 for every tfn > 0, with
	// tfn at most maxTF*log2(1+avgdl) (dl >= 1).
	tfnMax := float64(maxTF) * log2(1+avgdl)
	p := f / n
	if p <= 0 {
		p = 1e-9
	}
	bound := 4.0/27.0*math.Max(0, log2(tfnMax*n/p)) + 0.5*log2(2*math.Pi)
	return float32(bound) * queryWeight
}
