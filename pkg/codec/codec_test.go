package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryNamesIncludesBuiltins(t *testing.T) {
	names := Names()
	require.Contains(t, names, "varint")
	require.Contains(t, names, "roaring")
	require.Contains(t, names, "ef")
	require.Contains(t, names, "simdbp")
}

func TestWholeListReflectsCodecFamily(t *testing.T) {
	for name, wantWholeList := range map[string]bool{
		"varint": false, "simdbp": false, "roaring": true, "ef": true,
	} {
		c, err := Get(name)
		require.NoError(t, err)
		require.Equalf(t, wantWholeList, c.WholeList(), "codec=%s", name)
	}
}

func TestGetUnknownCodec(t *testing.T) {
	_, err := Get("no-such-codec")
	require.Error(t, err)
}

func TestVarintRoundTrip(t *testing.T) {
	c, err := Get("varint")
	require.NoError(t, err)

	values := []uint32{0, 1, 127, 128, 300, 16384, 4294967295}
	enc := c.Encode(nil, values)
	dec, consumed, err := c.Decode(enc, len(values))
	require.NoError(t, err)
	require.Equal(t, len(enc), consumed)
	require.Equal(t, values, dec)
}

func TestRoaringRoundTrip(t *testing.T) {
	c, err := Get("roaring")
	require.NoError(t, err)

	values := []uint32{2, 9, 100, 100000}
	enc := c.Encode(nil, values)
	dec, _, err := c.Decode(enc, len(values))
	require.NoError(t, err)
	require.ElementsMatch(t, values, dec)
}

func TestVarintDecodeTruncatedIsError(t *testing.T) {
	c, err := Get("varint")
	require.NoError(t, err)
	enc := c.Encode(nil, []uint32{300})
	_, _, err = c.Decode(enc[:0], 1)
	require.Error(t, err)
}

func TestEliasFanoRoundTrip(t *testing.T) {
	c, err := Get("ef")
	require.NoError(t, err)

	values := []uint32{2, 9, 100, 100000}
	enc := c.Encode(nil, values)
	dec, consumed, err := c.Decode(enc, len(values))
	require.NoError(t, err)
	require.Equal(t, len(enc), consumed)
	require.Equal(t, values, dec)
}

func TestEliasFanoRoundTripEmptyList(t *testing.T) {
	c, err := Get("ef")
	require.NoError(t, err)

	enc := c.Encode(nil, nil)
	dec, consumed, err := c.Decode(enc, 0)
	require.NoError(t, err)
	require.Equal(t, len(enc), consumed)
	require.Empty(t, dec)
}

func TestBitpackRoundTrip(t *testing.T) {
	c, err := Get("simdbp")
	require.NoError(t, err)

	values := []uint32{0, 1, 2, 5, 31, 127}
	enc := c.Encode(nil, values)
	dec, consumed, err := c.Decode(enc, len(values))
	require.NoError(t, err)
	require.Equal(t, len(enc), consumed)
	require.Equal(t, values, dec)
}

func TestBitpackRoundTripAllZeros(t *testing.T) {
	c, err := Get("simdbp")
	require.NoError(t, err)

	values := []uint32{0, 0, 0}
	enc := c.Encode(nil, values)
	dec, _, err := c.Decode(enc, len(values))
	require.NoError(t, err)
	require.Equal(t, values, dec)
}
