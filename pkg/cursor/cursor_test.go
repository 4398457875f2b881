package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorNextIsMonotonic(t *testing.T) {
	c := New([]uint32{1, 5, 9, 20}, []uint32{1, 2, 3, 4})
	var seen []uint32
	for !c.Empty() {
		seen = append(seen, c.DocID())
		c.Next()
	}
	require.Equal(t, []uint32{1, 5, 9, 20}, seen)
	require.Equal(t, ExhaustedDocID, c.DocID())
}

func TestNextGEQPostcondition(t *testing.T) {
	docids := []uint32{2, 4, 6, 8, 10}
	freqs := []uint32{1, 1, 1, 1, 1}

	cases := []struct {
		target   uint32
		wantDoc  uint32
		wantFreq uint32
	}{
		{0, 2, 1},
		{2, 2, 1},
		{3, 4, 1},
		{10, 10, 1},
		{11, ExhaustedDocID, 0},
	}
	for _, tc := range cases {
		c := New(docids, freqs)
		c.NextGEQ(tc.target)
		require.Equal(t, tc.wantDoc, c.DocID(), "target=%d", tc.target)
		require.Equal(t, tc.wantFreq, c.Freq(), "target=%d", tc.target)
	}
}

func TestNextGEQNeverMovesBackward(t *testing.T) {
	c := New([]uint32{1, 3, 5, 7}, []uint32{1, 1, 1, 1})
	c.NextGEQ(5)
	require.Equal(t, uint32(5), c.DocID())
	c.NextGEQ(2) // target behind the current position: no-op
	require.Equal(t, uint32(5), c.DocID())
}

func TestResetRewindsToStart(t *testing.T) {
	c := New([]uint32{1, 2, 3}, []uint32{1, 1, 1})
	c.Next()
	c.Next()
	c.Reset()
	require.Equal(t, uint32(1), c.DocID())
}

func TestScoredMaxScoredBlockMaxScored(t *testing.T) {
	c := New([]uint32{1, 2, 3}, []uint32{2, 5, 1})
	scoreFn := func(docid uint32, freq uint32) float32 { return float32(freq) * 10 }
	sc := NewScored(c, scoreFn)
	require.Equal(t, float32(20), sc.Score())

	ms := NewMaxScored(sc, 50)
	require.Equal(t, float32(50), ms.MaxScore())

	bm := NewBlockMaxScored(ms, fakeBlocks{max: 42, last: 99})
	require.Equal(t, float32(42), bm.BlockMaxScore())
	require.Equal(t, uint32(99), bm.BlockLastDocID())
}

func TestScoredExhaustedIsZero(t *testing.T) {
	c := New([]uint32{1}, []uint32{1})
	c.Next()
	sc := NewScored(c, func(uint32, uint32) float32 { return 99 })
	require.Equal(t, float32(0), sc.Score())
}

type fakeBlocks struct {
	max  float32
	last uint32
}

func (f fakeBlocks) BlockMaxScore(uint32) float32 { return f.max }
func (f fakeBlocks) BlockLastDocID(uint32) uint32 { return f.last }
