package qparse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

func fakeResolver(vocab map[string]uint32) Resolver {
	return func(tok string) (uint32, bool) {
		id, ok := vocab[tok]
		return id, ok
	}
}

func TestParseLineResolvesAndWeightsRepeatedTerms(t *testing.T) {
	resolve := fakeResolver(map[string]uint32{"cat": 1, "dog": 2})
	q, err := ParseLine("q1: cat dog cat", resolve)
	require.NoError(t, err)
	require.Equal(t, "q1", q.ID)
	require.Len(t, q.Terms, 2)
	require.Equal(t, TermWeight{TermID: 1, Weight: 2}, q.Terms[0])
	require.Equal(t, TermWeight{TermID: 2, Weight: 1}, q.Terms[1])
}

func TestParseLineNormalizesToLowercase(t *testing.T) {
	resolve := fakeResolver(map[string]uint32{"cat": 5})
	q, err := ParseLine("CAT", resolve)
	require.NoError(t, err)
	require.Equal(t, []TermWeight{{TermID: 5, Weight: 1}}, q.Terms)
}

func TestParseLineWithoutIDPrefix(t *testing.T) {
	resolve := fakeResolver(map[string]uint32{"cat": 1})
	q, err := ParseLine("cat", resolve)
	require.NoError(t, err)
	require.Equal(t, "", q.ID)
}

func TestParseLineDropsUnresolvedTokens(t *testing.T) {
	resolve := fakeResolver(map[string]uint32{"cat": 1})
	q, err := ParseLine("cat unknownword", resolve)
	require.NoError(t, err)
	require.Len(t, q.Terms, 1)
	require.Equal(t, uint32(1), q.Terms[0].TermID)
}

func TestParseLineAllUnresolvedIsEmptyQueryError(t *testing.T) {
	resolve := fakeResolver(map[string]uint32{})
	_, err := ParseLine("nope nowhere", resolve)
	require.ErrorIs(t, err, pisaerr.ErrEmptyQuery)
}

func TestParseLineBlankIsEmptyQueryError(t *testing.T) {
	_, err := ParseLine("   ", fakeResolver(nil))
	require.ErrorIs(t, err, pisaerr.ErrEmptyQuery)
}

func TestParseLineColonInsideTextIsNotTreatedAsID(t *testing.T) {
	resolve := fakeResolver(map[string]uint32{"cat:dog": 1})
	// a colon preceded by whitespace is not an id separator
	id, rest := splitID("hello cat:dog world")
	require.Equal(t, "", id)
	require.Equal(t, "hello cat:dog world", rest)

	q, err := ParseLine("hello cat:dog world", resolve)
	require.NoError(t, err)
	require.Equal(t, "", q.ID)
	require.Equal(t, []TermWeight{{TermID: 1, Weight: 1}}, q.Terms)
}

func TestParseIntegerLineAccumulatesWeights(t *testing.T) {
	q, err := ParseIntegerLine("q7: 14 87 14 203")
	require.NoError(t, err)
	require.Equal(t, "q7", q.ID)
	require.ElementsMatch(t, []TermWeight{
		{TermID: 14, Weight: 2},
		{TermID: 87, Weight: 1},
		{TermID: 203, Weight: 1},
	}, q.Terms)
}

func TestParseIntegerLineRejectsNonNumericToken(t *testing.T) {
	_, err := ParseIntegerLine("q1: 14 notanumber")
	require.ErrorIs(t, err, pisaerr.ErrParseError)
}

func TestParseIntegerLineEmptyIsEmptyQueryError(t *testing.T) {
	_, err := ParseIntegerLine("q1:")
	require.ErrorIs(t, err, pisaerr.ErrEmptyQuery)
}

func TestBatchResolverCountsOverlappingOccurrences(t *testing.T) {
	r := NewBatchResolver([]string{"cat", "dog"}, []uint32{10, 20})
	got := r.Resolve("cat dog cat")

	byID := map[uint32]float32{}
	for _, tw := range got {
		byID[tw.TermID] = tw.Weight
	}
	require.Equal(t, float32(2), byID[10])
	require.Equal(t, float32(1), byID[20])
}
