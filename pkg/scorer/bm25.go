package scorer

import (
	"math"

	"github.com/pisa-go/pisa/pkg/cursor"
)

func init() {
	Register("bm25", func(p Params) Scorer { return bm25{k1: p.BM25K1, b: p.BM25B} })
}

// bm25 implements Okapi BM25 with the original system's defaults
// (k1=0.9, b=0.4), grounded on pkg/qgram/scorer.go's saturate/
// normalizedTermFrequency pair and on original_source's bm25.hpp formula.
type bm25 struct {
	k1, b float64
}

func (s bm25) Name() string { return "bm25" }

func bm25IDF(stats TermStats) float64 {
	n := float64(stats.TotalDocs)
	df := float64(stats.DocFreq)
	if df <= 0 {
		df = 0.5
	}
	return math.Log(1.0 + (n-df+0.5)/(df+0.5))
}

func (s bm25) TermScorer(queryWeight float32, stats TermStats, docLen DocLenFunc) cursor.ScoreFunc {
	idf := bm25IDF(stats)
	avgdl := stats.AvgDocLen
	if avgdl <= 0 {
		avgdl = 1
	}
	k1, b := s.k1, s.b
	return func(docid uint32, freq uint32) float32 {
		tf := float64(freq)
		dl := float64(docLen(docid))
		lenNorm := 1 - b + b*dl/avgdl
		saturated := (k1 + 1) * tf / (k1*lenNorm + tf)
		return float32(idf*saturated) * queryWeight
	}
}

func (s bm25) MaxScore(queryWeight float32, stats TermStats, maxTF uint32) float32 {
	idf := bm25IDF(stats)
	k1, b := s.k1, s.b
	// Most favorable length norm (shortest possible document) upper-bounds
	// the saturation term, the same reasoning pkg/qgram/wand.go's
	// estimateMaxScore applies via stat.MinFieldLen.
	lenNorm := 1 - b
	tf := float64(maxTF)
	saturated := (k1 + 1) * tf / (k1*lenNorm + tf)
	return float32(idf*saturated) * queryWeight
}
