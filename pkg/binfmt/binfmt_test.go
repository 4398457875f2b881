package binfmt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryCollectionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, []uint32{3, 1, 4, 1, 5}))
	require.NoError(t, WriteSequence(&buf, []uint32{}))
	require.NoError(t, WriteSequence(&buf, []uint32{9}))

	bc, err := OpenBinaryCollection(FromBytes(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 3, bc.Len())
	require.Equal(t, Sequence{3, 1, 4, 1, 5}, bc.Sequence(0))
	require.Equal(t, Sequence{}, bc.Sequence(1))
	require.Equal(t, Sequence{9}, bc.Sequence(2))
}

func TestBinaryCollectionRejectsTruncatedRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, []uint32{1, 2, 3}))
	truncated := buf.Bytes()[:len(buf.Bytes())-4]

	_, err := OpenBinaryCollection(FromBytes(truncated))
	require.Error(t, err)
}

func TestPayloadVectorRoundTrip(t *testing.T) {
	items := [][]byte{[]byte("apple"), []byte(""), []byte("banana split")}
	buf, err := BuildPayloadVector(items, false)
	require.NoError(t, err)

	pv, err := OpenPayloadVector(buf, false)
	require.NoError(t, err)
	require.Equal(t, 3, pv.Len())

	for i, want := range items {
		got, err := pv.At(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestPayloadVectorWideOffsets(t *testing.T) {
	items := [][]byte{[]byte("x"), []byte("yy")}
	buf, err := BuildPayloadVector(items, true)
	require.NoError(t, err)

	pv, err := OpenPayloadVector(buf, true)
	require.NoError(t, err)
	got, err := pv.At(1)
	require.NoError(t, err)
	require.Equal(t, []byte("yy"), got)
}

func TestLookupTableFindsSortedKeys(t *testing.T) {
	keys := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma"), []byte("zeta")}
	buf, err := BuildLookupTable(keys, true, false)
	require.NoError(t, err)

	lt, err := OpenLookupTable(buf)
	require.NoError(t, err)

	for i, k := range keys {
		id, ok := lt.Lookup(k)
		require.True(t, ok)
		require.Equal(t, i, id)
	}

	_, ok := lt.Lookup([]byte("nowhere"))
	require.False(t, ok)
}
