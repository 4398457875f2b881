package lexicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAssignsIDsInSortedOrder(t *testing.T) {
	keys := []string{"dog", "apple", "cat"}
	lex, idsInInputOrder, err := Build(keys)
	require.NoError(t, err)
	defer lex.Close()

	// sorted order: apple(0), cat(1), dog(2)
	require.Equal(t, []uint32{2, 0, 1}, idsInInputOrder)

	id, ok := lex.ID("apple")
	require.True(t, ok)
	require.Equal(t, uint32(0), id)

	id, ok = lex.ID("dog")
	require.True(t, ok)
	require.Equal(t, uint32(2), id)
}

func TestIDUnknownKeyReturnsFalse(t *testing.T) {
	lex, _, err := Build([]string{"alpha", "beta"})
	require.NoError(t, err)
	defer lex.Close()

	_, ok := lex.ID("gamma")
	require.False(t, ok)
}

func TestStringResolvesIDBackToOriginalKey(t *testing.T) {
	keys := []string{"zebra", "ant", "mango"}
	lex, idsInInputOrder, err := Build(keys)
	require.NoError(t, err)
	defer lex.Close()

	for i, key := range keys {
		got, err := lex.String(idsInInputOrder[i])
		require.NoError(t, err)
		require.Equal(t, key, got)
	}
}

func TestLenMatchesKeyCount(t *testing.T) {
	lex, _, err := Build([]string{"a", "b", "c", "d"})
	require.NoError(t, err)
	defer lex.Close()
	require.Equal(t, 4, lex.Len())
}

func TestSerializeOpenRoundTrip(t *testing.T) {
	keys := []string{"one", "two", "three"}
	lex, idsInInputOrder, err := Build(keys)
	require.NoError(t, err)

	fstBytes, stringsBytes := lex.Serialize()
	require.NoError(t, lex.Close())

	reopened, err := Open(fstBytes, stringsBytes)
	require.NoError(t, err)
	defer reopened.Close()

	for i, key := range keys {
		id, ok := reopened.ID(key)
		require.True(t, ok)
		require.Equal(t, idsInInputOrder[i], id)

		got, err := reopened.String(id)
		require.NoError(t, err)
		require.Equal(t, key, got)
	}
}
