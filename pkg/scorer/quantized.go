package scorer

import (
	"github.com/pisa-go/pisa/pkg/cursor"
)

func init() {
	Register("quantized", func(p Params) Scorer {
		return quantized{base: bm25{k1: p.BM25K1, b: p.BM25B}, levels: 255}
	})
}

// quantized wraps another scorer (BM25 by default, matching
// original_source's quantized index construction) and snaps its
// continuous score to one of a fixed number of integer levels between 0
// and the term's MaxScore, trading a small amount of ranking precision for
// faster top-k aggregation and smaller WandData block tables.
// TestQuantizedScorerMatchesBM25WithinBucketWidth checks that a quantized
// score stays within one bucket width of the BM25 score it snaps.
type quantized struct {
	base   Scorer
	levels int
}

func (s quantized) Name() string { return "quantized" }

func (s quantized) TermScorer(queryWeight float32, stats TermStats, docLen DocLenFunc) cursor.ScoreFunc {
	inner := s.base.TermScorer(queryWeight, stats, docLen)
	max := s.base.MaxScore(queryWeight, stats, maxTFFromStats(stats))
	step := max / float32(s.levels)
	return func(docid uint32, freq uint32) float32 {
		raw := inner(docid, freq)
		if step <= 0 {
			return 0
		}
		level := int32(raw/step + 0.5)
		if level < 0 {
			level = 0
		}
		if level > int32(s.levels) {
			level = int32(s.levels)
		}
		return float32(level) * step
	}
}

func (s quantized) MaxScore(queryWeight float32, stats TermStats, maxTF uint32) float32 {
	return s.base.MaxScore(queryWeight, stats, maxTF)
}

// maxTFFromStats bounds a term's maximum per-document frequency from its
// collection-wide stats when the caller has not tracked an exact maxTF: no
// single document can hold more occurrences of the term than its total
// collection frequency.
func maxTFFromStats(stats TermStats) uint32 {
	if stats.DocFreq == 0 || stats.TotalTermFreq == 0 {
		return 1
	}
	if stats.TotalTermFreq > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(stats.TotalTermFreq)
}
