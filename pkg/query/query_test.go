package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/topk"
	"github.com/pisa-go/pisa/pkg/wand"
)

// toyTerm is one posting list of a small, hand-built three-term index
// shared by every cross-algorithm test below. Scoring is simply "score
// equals frequency", which keeps expected results easy to compute by hand
// while still exercising every pruning decision (term-wide max, block
// max, essential/non-essential partitioning).
type toyTerm struct {
	docids []uint32
	freqs  []uint32
}

func toyIndex() []toyTerm {
	return []toyTerm{
		{docids: []uint32{1, 2, 3, 4, 5, 6, 7, 8}, freqs: []uint32{1, 2, 1, 3, 1, 2, 1, 5}},
		{docids: []uint32{2, 4, 6, 8}, freqs: []uint32{2, 2, 2, 2}},
		{docids: []uint32{1, 8}, freqs: []uint32{5, 5}},
	}
}

func scoreFn(_ uint32, freq uint32) float32 { return float32(freq) }

func termMaxScore(t toyTerm) float32 {
	var max float32
	for _, f := range t.freqs {
		if s := scoreFn(0, f); s > max {
			max = s
		}
	}
	return max
}

func scoredCursors(terms []toyTerm) []*cursor.Scored {
	out := make([]*cursor.Scored, len(terms))
	for i, t := range terms {
		out[i] = cursor.NewScored(cursor.New(t.docids, t.freqs), scoreFn)
	}
	return out
}

func maxScoredCursors(terms []toyTerm) []*cursor.MaxScored {
	out := make([]*cursor.MaxScored, len(terms))
	for i, t := range terms {
		sc := cursor.NewScored(cursor.New(t.docids, t.freqs), scoreFn)
		out[i] = cursor.NewMaxScored(sc, termMaxScore(t))
	}
	return out
}

func blockMaxScoredCursors(terms []toyTerm, blockSize int) []*cursor.BlockMaxScored {
	out := make([]*cursor.BlockMaxScored, len(terms))
	for i, t := range terms {
		sc := cursor.NewScored(cursor.New(t.docids, t.freqs), scoreFn)
		ms := cursor.NewMaxScored(sc, termMaxScore(t))
		td := wand.BuildFixed(t.docids, scoreFn, t.freqs, blockSize)
		out[i] = cursor.NewBlockMaxScored(ms, wand.NewLookup(&td))
	}
	return out
}

func requireSameTopK(t *testing.T, want, got []topk.Entry) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].DocID, got[i].DocID, "position %d", i)
		require.InDelta(t, want[i].Score, got[i].Score, 1e-4, "position %d", i)
	}
}

func TestRankedOrIsTheExhaustiveBaseline(t *testing.T) {
	terms := toyIndex()
	got := RankedOr(scoredCursors(terms), 10)
	require.Len(t, got, 8) // every docid 1..8 is touched by at least one term

	// doc 8: term0 freq5 + term1 freq2 + term2 freq5 = 12, the highest score
	require.Equal(t, uint32(8), got[0].DocID)
	require.InDelta(t, float32(12), got[0].Score, 1e-6)
}

func TestWANDAgreesWithRankedOr(t *testing.T) {
	terms := toyIndex()
	want := RankedOr(scoredCursors(terms), 3)
	got := WAND(maxScoredCursors(terms), 3)
	requireSameTopK(t, want, got)
}

func TestMaxScoreAgreesWithRankedOr(t *testing.T) {
	terms := toyIndex()
	want := RankedOr(scoredCursors(terms), 3)
	got := MaxScore(maxScoredCursors(terms), 3)
	requireSameTopK(t, want, got)
}

func TestBlockMaxWANDAgreesWithRankedOr(t *testing.T) {
	terms := toyIndex()
	want := RankedOr(scoredCursors(terms), 3)
	got := BlockMaxWAND(blockMaxScoredCursors(terms, 2), 3)
	requireSameTopK(t, want, got)
}

func TestBlockMaxMaxScoreAgreesWithRankedOr(t *testing.T) {
	terms := toyIndex()
	want := RankedOr(scoredCursors(terms), 3)
	got := BlockMaxMaxScore(blockMaxScoredCursors(terms, 2), 3)
	requireSameTopK(t, want, got)
}

func TestTAATAgreesWithRankedOr(t *testing.T) {
	terms := toyIndex()
	want := RankedOr(scoredCursors(terms), 3)
	got := TAAT(scoredCursors(terms), 9, 3)
	requireSameTopK(t, want, got)
}

func TestTAATLazyAgreesWithTAAT(t *testing.T) {
	terms := toyIndex()
	want := TAAT(scoredCursors(terms), 9, 3)

	acc := NewLazyAccumulator(9, 0)
	got := TAATLazy(scoredCursors(terms), acc, 3)
	requireSameTopK(t, want, got)
}

func TestRankedAndIntersectsOnly(t *testing.T) {
	terms := toyIndex()
	got := RankedAnd(scoredCursors(terms), 10)
	// doc 8 is the only docid present in all three posting lists (doc 1
	// is absent from term 1, which never touches odd docids)
	require.Len(t, got, 1)
	require.Equal(t, uint32(8), got[0].DocID)
	require.InDelta(t, float32(12), got[0].Score, 1e-6)
}

func TestLazyAccumulatorResetsStaleSlotsBetweenQueries(t *testing.T) {
	acc := NewLazyAccumulator(4, 2) // 2-bit counters: tiny cycle, easy to exercise
	acc.BeginQuery()
	acc.Accumulate(1, 5)
	acc.Accumulate(2, 7)

	q1 := topk.New(10, 0)
	acc.Aggregate(q1)
	first := q1.Results()
	require.Len(t, first, 2)

	// a fresh query must not see doc 2's stale accumulation unless it is
	// touched again
	acc.BeginQuery()
	acc.Accumulate(1, 3)
	q2 := topk.New(10, 0)
	acc.Aggregate(q2)
	second := q2.Results()
	require.Len(t, second, 1)
	require.Equal(t, uint32(1), second[0].DocID)
}

func TestLazyAccumulatorZeroesOnGenerationWrap(t *testing.T) {
	acc := NewLazyAccumulator(4, 2) // 2-bit counters: generations cycle 2, 3, then wrap back to 1

	// seed doc 0 under the accumulator's initial generation (1), before any
	// BeginQuery call, standing in for a slot left over from whatever used
	// generation 1 last before this accumulator's current cycle.
	acc.Accumulate(0, 123)

	acc.BeginQuery() // generation -> 2
	acc.Accumulate(1, 5)

	acc.BeginQuery() // generation -> 3
	acc.Accumulate(2, 7)

	require.False(t, acc.Wrapped())
	acc.BeginQuery() // generation -> 0, wraps back to 1
	require.True(t, acc.Wrapped())

	acc.Accumulate(3, 9)

	q := topk.New(10, 0)
	acc.Aggregate(q)
	results := q.Results()

	// doc 0's generation-1 slot must not resurrect just because the
	// counter cycled back to 1 — only doc 3, accumulated after the wrap,
	// is live for this query.
	require.Len(t, results, 1)
	require.Equal(t, uint32(3), results[0].DocID)
	require.InDelta(t, float32(9), results[0].Score, 1e-6)
}
