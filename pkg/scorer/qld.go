package scorer

import (
	"math"

	"github.com/pisa-go/pisa/pkg/cursor"
)

func init() {
	Register("qld", func(p Params) Scorer { return qld{mu: p.QLDMu} })
}

// qld implements query-likelihood with Dirichlet smoothing, mu=1000 by
// default per original_source's ScorerParams.m_qld_mu.
type qld struct {
	mu float64
}

func (s qld) Name() string { return "qld" }

// collectionProbability estimates P(t|C) = term's total frequency over
// the collection's total token count, approximating the latter as
// TotalDocs*AvgDocLen since the wire formats here do not carry a direct
// collection-token-count field.
func collectionProbability(stats TermStats) float64 {
	totalTokens := float64(stats.TotalDocs) * stats.AvgDocLen
	if totalTokens <= 0 {
		totalTokens = 1
	}
	p := float64(stats.TotalTermFreq) / totalTokens
	if p <= 0 {
		p = 1.0 / totalTokens
	}
	return p
}

func (s qld) TermScorer(queryWeight float32, stats TermStats, docLen DocLenFunc) cursor.ScoreFunc {
	pc := collectionProbability(stats)
	mu := s.mu
	return func(docid uint32, freq uint32) float32 {
		tf := float64(freq)
		dl := float64(docLen(docid))
		if dl <= 0 {
			dl = 1
		}
		numer := math.Log(1 + tf/(mu*pc))
		denom := math.Log(mu / (dl + mu))
		return float32(numer+denom) * queryWeight
	}
}

func (s qld) MaxScore(queryWeight float32, stats TermStats, maxTF uint32) float32 {
	pc := collectionProbability(stats)
	mu := s.mu
	numer := math.Log(1 + float64(maxTF)/(mu*pc))
	// Shortest possible document (dl=1) maximizes the smoothing term.
	denom := math.Log(mu / (1 + mu))
	return float32(numer+denom) * queryWeight
}
