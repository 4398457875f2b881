package build

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeLowercasesSplitsAndDropsStopwords(t *testing.T) {
	tok := DefaultTokenizer()
	got := tok.Tokenize("The Quick Brown Fox jumps over the lazy dog")
	require.NotContains(t, got, "the")
	require.NotContains(t, got, "")
	require.Contains(t, got, "quick")
	require.Contains(t, got, "fox")
}

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	tok := DefaultTokenizer()
	got := tok.Tokenize("hello, world! foo-bar")
	require.Equal(t, []string{"hello", "world", "foo", "bar"}, got)
}

func TestBuildForwardIndexPreservesInputOrderUnderConcurrency(t *testing.T) {
	docs := make([]Document, 50)
	for i := range docs {
		docs[i] = Document{ExternalID: string(rune('a' + i%26)), Text: "same text every time"}
	}
	tok := DefaultTokenizer()

	fwd, err := BuildForwardIndex(context.Background(), docs, tok, 8)
	require.NoError(t, err)
	require.Len(t, fwd.Entries, 50)
	for i, e := range fwd.Entries {
		require.Equal(t, docs[i].ExternalID, e.ExternalID)
		require.NotEmpty(t, e.Terms)
	}
}

func TestInvertBuildsSortedVocabAndPerTermPostings(t *testing.T) {
	fwd := &ForwardIndex{Entries: []ForwardEntry{
		{ExternalID: "d0", Terms: []string{"cat", "dog", "cat"}},
		{ExternalID: "d1", Terms: []string{"dog"}},
		{ExternalID: "d2", Terms: []string{"cat", "bird"}},
	}}

	inv := Invert(fwd)
	require.Equal(t, []string{"bird", "cat", "dog"}, inv.Vocab)
	require.Equal(t, []string{"d0", "d1", "d2"}, inv.DocIDs)
	require.Equal(t, []uint32{3, 1, 2}, inv.DocLengths)

	// "cat": appears in doc0 (freq 2) and doc2 (freq 1)
	catIdx := indexOf(inv.Vocab, "cat")
	require.Equal(t, []uint32{0, 2}, inv.Postings[catIdx][0])
	require.Equal(t, []uint32{2, 1}, inv.Postings[catIdx][1])

	// "dog": appears in doc0 and doc1, each freq 1
	dogIdx := indexOf(inv.Vocab, "dog")
	require.Equal(t, []uint32{0, 1}, inv.Postings[dogIdx][0])
	require.Equal(t, []uint32{1, 1}, inv.Postings[dogIdx][1])
}

func indexOf(vocab []string, term string) int {
	for i, v := range vocab {
		if v == term {
			return i
		}
	}
	return -1
}

func TestForwardIndexSerializeRoundTrip(t *testing.T) {
	fwd := &ForwardIndex{Entries: []ForwardEntry{
		{ExternalID: "d0", Terms: []string{"a", "b"}},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteForwardIndex(&buf, fwd))

	got, err := ReadForwardIndex(&buf)
	require.NoError(t, err)
	require.Equal(t, fwd, got)
}

func TestInvertedFileSerializeRoundTrip(t *testing.T) {
	inv := &InvertedResult{
		Vocab:      []string{"a", "b"},
		Postings:   [][2][]uint32{{{0, 1}, {1, 1}}, {{2}, {3}}},
		DocIDs:     []string{"d0", "d1", "d2"},
		DocLengths: []uint32{1, 1, 1},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteInverted(&buf, inv))

	got, err := ReadInverted(&buf)
	require.NoError(t, err)
	require.Equal(t, inv.Vocab, got.Vocab)
	require.Equal(t, inv.Postings, got.Postings)
	require.Equal(t, inv.DocIDs, got.DocIDs)
	require.Equal(t, inv.DocLengths, got.DocLengths)
}
