package scorer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func docLenConst(n uint32) DocLenFunc {
	return func(uint32) uint32 { return n }
}

func sampleStats() TermStats {
	return TermStats{DocFreq: 50, TotalDocs: 1000, TotalTermFreq: 400, AvgDocLen: 120}
}

func TestRegistryHasAllFiveScorers(t *testing.T) {
	for _, name := range []string{"bm25", "qld", "pl2", "dph", "quantized"} {
		require.Contains(t, Names(), name)
	}
}

func TestGetUnknownScorer(t *testing.T) {
	_, err := Get(Params{Name: "nonexistent"})
	require.Error(t, err)
}

// TestMaxScoreUpperBoundsEveryPosting is the invariant pkg/wand depends
// on: a term's MaxScore must never be smaller than the score any single
// posting in the term can achieve, across a spread of frequencies and
// document lengths.
func TestMaxScoreUpperBoundsEveryPosting(t *testing.T) {
	stats := sampleStats()
	for _, name := range Names() {
		if name == "quantized" {
			continue // quantized deliberately rounds down into discrete levels
		}
		s, err := Get(DefaultParams(name))
		require.NoError(t, err)

		maxTF := uint32(30)
		bound := s.MaxScore(1, stats, maxTF)

		for _, dl := range []uint32{1, 10, 120, 500} {
			for _, tf := range []uint32{1, 5, 15, maxTF} {
				sf := s.TermScorer(1, stats, docLenConst(dl))
				got := sf(1, tf)
				require.LessOrEqualf(t, got, bound+1e-3, "scorer=%s dl=%d tf=%d", name, dl, tf)
			}
		}
	}
}

func TestBM25RewardsHigherFrequency(t *testing.T) {
	s, err := Get(DefaultParams("bm25"))
	require.NoError(t, err)
	sf := s.TermScorer(1, sampleStats(), docLenConst(120))
	require.Greater(t, sf(1, 5), sf(1, 1))
}

func TestScoreFunctionHonorsQueryWeight(t *testing.T) {
	s, err := Get(DefaultParams("bm25"))
	require.NoError(t, err)
	stats := sampleStats()
	base := s.TermScorer(1, stats, docLenConst(120))(1, 3)
	boosted := s.TermScorer(2, stats, docLenConst(120))(1, 3)
	require.InDelta(t, base*2, boosted, 1e-4)
}

func TestQuantizedScorerMatchesBM25WithinBucketWidth(t *testing.T) {
	base, err := Get(DefaultParams("bm25"))
	require.NoError(t, err)
	q, err := Get(Params{Name: "quantized", BM25B: 0.4, BM25K1: 0.9})
	require.NoError(t, err)

	stats := sampleStats()
	step := base.MaxScore(1, stats, maxTFFromStats(stats)) / 255

	baseSF := base.TermScorer(1, stats, docLenConst(120))
	qSF := q.TermScorer(1, stats, docLenConst(120))
	for _, tf := range []uint32{1, 5, 15, 30} {
		require.InDelta(t, baseSF(1, tf), qSF(1, tf), float64(step)+1e-3)
	}
}
