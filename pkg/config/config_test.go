package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultScoringMatchesBM25Defaults(t *testing.T) {
	s := DefaultScoring()
	require.Equal(t, "bm25", s.Name)
	require.Equal(t, s.ToParams().BM25B, s.BM25B)
	require.Equal(t, s.ToParams().BM25K1, s.BM25K1)
}

func TestParseAlgorithmAcceptsEveryKnownName(t *testing.T) {
	for _, name := range []string{"ranked_or", "ranked_and", "wand", "bmw", "mmw", "bmm", "taat", "taat_lazy"} {
		got, err := ParseAlgorithm(name)
		require.NoError(t, err)
		require.Equal(t, name, got)
	}
}

func TestParseAlgorithmRejectsUnknownName(t *testing.T) {
	_, err := ParseAlgorithm("bogus")
	require.Error(t, err)
}

func TestStringListAccumulatesSetCalls(t *testing.T) {
	var sl StringList
	require.NoError(t, sl.Set("a"))
	require.NoError(t, sl.Set("b"))
	require.Equal(t, []string{"a", "b"}, []string(sl))
	require.Equal(t, "a,b", sl.String())
}
