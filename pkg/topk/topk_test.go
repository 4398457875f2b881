package topk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueRetainsOnlyKHighestScores(t *testing.T) {
	q := New(3, 0)
	for _, e := range []Entry{{1, 5}, {2, 9}, {3, 1}, {4, 7}, {5, 3}} {
		q.Insert(e.DocID, e.Score)
	}
	got := q.Results()
	require.Len(t, got, 3)
	require.Equal(t, []float32{9, 7, 5}, []float32{got[0].Score, got[1].Score, got[2].Score})
}

func TestQueueTieBreaksBySmallerDocID(t *testing.T) {
	q := New(2, 0)
	q.Insert(10, 5)
	q.Insert(20, 5)
	q.Insert(5, 5)
	got := q.Results()
	require.Len(t, got, 2)
	// all tied at score 5; smaller docid ranks first and survives eviction
	require.Equal(t, uint32(5), got[0].DocID)
	require.Equal(t, uint32(10), got[1].DocID)
}

func TestThresholdRisesMonotonically(t *testing.T) {
	q := New(2, 0)
	require.Equal(t, float32(0), q.Threshold())
	q.Insert(1, 3)
	require.Equal(t, float32(0), q.Threshold()) // not full yet, seed still reported
	q.Insert(2, 7)
	require.True(t, q.Full())
	prev := q.Threshold()
	require.Equal(t, float32(3), prev)

	q.Insert(3, 5)
	require.GreaterOrEqual(t, q.Threshold(), prev)
}

func TestInsertRejectsBelowSeedThreshold(t *testing.T) {
	q := New(5, 10)
	ok := q.Insert(1, 4)
	require.False(t, ok)
	require.Equal(t, 0, q.Len())

	ok = q.Insert(2, 11)
	require.True(t, ok)
}

func TestInsertRejectsScoreNotBeatingFullQueue(t *testing.T) {
	q := New(1, 0)
	require.True(t, q.Insert(1, 5))
	require.False(t, q.Insert(2, 5)) // equal score with a larger docid never displaces once full
	require.True(t, q.Insert(3, 6))
	got := q.Results()
	require.Equal(t, uint32(3), got[0].DocID)
}

func TestZeroKNeverRetainsAnything(t *testing.T) {
	q := New(0, 0)
	require.False(t, q.Insert(1, 100))
	require.Empty(t, q.Results())
}

func TestResultsDrainsAndResetsQueue(t *testing.T) {
	q := New(2, 0)
	q.Insert(1, 1)
	q.Insert(2, 2)
	first := q.Results()
	require.Len(t, first, 2)
	require.Equal(t, 0, q.Len())
	require.Empty(t, q.Results())
}
