package wand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pisa-go/pisa/pkg/cursor"
)

func scoreByFreq(_ uint32, freq uint32) float32 { return float32(freq) }

func TestBuildFixedPartitionsIntoExpectedBlockCount(t *testing.T) {
	docids := []uint32{1, 2, 3, 4, 5, 6, 7}
	freqs := []uint32{1, 2, 3, 4, 5, 6, 7}

	td := BuildFixed(docids, scoreByFreq, freqs, 3)
	require.Len(t, td.Blocks, 3) // 3,3,1
	require.Equal(t, uint32(3), td.Blocks[0].LastDocID)
	require.Equal(t, uint32(6), td.Blocks[1].LastDocID)
	require.Equal(t, uint32(7), td.Blocks[2].LastDocID)
	require.Equal(t, float32(7), td.MaxScore)
}

func TestBuildFixedDefaultsBlockSizeWhenNonPositive(t *testing.T) {
	docids := make([]uint32, 10)
	freqs := make([]uint32, 10)
	for i := range docids {
		docids[i] = uint32(i + 1)
		freqs[i] = 1
	}
	td := BuildFixed(docids, scoreByFreq, freqs, 0)
	require.Len(t, td.Blocks, 1) // 10 postings fit in one B=64 block
}

// TestBlockMaxUpperBoundsEveryPosting is the core invariant pkg/query's
// block-max algorithms depend on: no posting inside a block may score
// higher than that block's recorded max, and no block may score higher
// than the term's overall max.
func TestBlockMaxUpperBoundsEveryPosting(t *testing.T) {
	docids := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	freqs := []uint32{3, 1, 4, 1, 5, 9, 2, 6, 5}

	td := BuildFixed(docids, scoreByFreq, freqs, 4)
	lookup := NewLookup(&td)

	for i, docid := range docids {
		blockMax := lookup.BlockMaxScore(docid)
		require.LessOrEqualf(t, scoreByFreq(docid, freqs[i]), blockMax, "docid=%d", docid)
		require.LessOrEqual(t, blockMax, td.MaxScore)
	}
}

func TestBuildVariableLastBlockEndsAtLastDocID(t *testing.T) {
	docids := []uint32{1, 2, 3, 4, 5, 6}
	freqs := []uint32{1, 1, 1, 1, 10, 1}

	td := BuildVariable(docids, scoreByFreq, freqs, 2)
	require.NotEmpty(t, td.Blocks)
	require.Equal(t, docids[len(docids)-1], td.Blocks[len(td.Blocks)-1].LastDocID)
}

func TestBuildVariableEmptyInput(t *testing.T) {
	td := BuildVariable(nil, scoreByFreq, nil, 1)
	require.Empty(t, td.Blocks)
	require.Equal(t, float32(0), td.MaxScore)
}

func TestLookupFallsBackToTermMaxWithoutBlocks(t *testing.T) {
	td := TermData{MaxScore: 42}
	l := NewLookup(&td)
	require.Equal(t, float32(42), l.BlockMaxScore(5))
	require.Equal(t, cursor.ExhaustedDocID, l.BlockLastDocID(5))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := &Data{Terms: []TermData{
		{MaxScore: 9.5, Blocks: []Block{{LastDocID: 3, MaxScore: 9.5}, {LastDocID: 7, MaxScore: 2.0}}},
		{MaxScore: 0, Blocks: nil},
	}}

	buf := Encode(d)
	got, err := DecodeFile(buf)
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestDecodeFileRejectsBadMagic(t *testing.T) {
	_, err := DecodeFile([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}

func TestDecodeFileRejectsTruncatedBuffer(t *testing.T) {
	d := &Data{Terms: []TermData{{MaxScore: 1, Blocks: []Block{{LastDocID: 1, MaxScore: 1}}}}}
	buf := Encode(d)
	_, err := DecodeFile(buf[:len(buf)-4])
	require.Error(t, err)
}
