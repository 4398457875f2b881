package codec

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

func init() {
	Register("ef", func() Codec { return eliasFanoCodec{} })
}

// eliasFanoCodec is the classic (non-partitioned) Elias-Fano whole-list
// encoding named alongside PEF-uniform/PEF-opt in spec.md's codec family:
// each value is split into high bits, delta-unary coded across the whole
// list, and low bits, bit-packed at a fixed width chosen from the
// list's universe and size. Grounded on original_source's ds2i
// compact_elias_fano, simplified to the unpartitioned scheme — like
// roaringCodec, it decodes the entire list as one unit rather than in
// independent blocks, and pkg/index never delta-gaps its input first.
type eliasFanoCodec struct{}

func (eliasFanoCodec) Name() string    { return "ef" }
func (eliasFanoCodec) WholeList() bool { return true }

func (eliasFanoCodec) Encode(dst []byte, values []uint32) []byte {
	n := len(values)
	if n == 0 {
		return appendU32(appendU32(appendU32(dst, 0), 0), 0)
	}
	universe := values[n-1] + 1
	l := eliasFanoLowBits(universe, uint32(n))

	lowW := newBitWriter()
	highW := newBitWriter()
	var prevHigh uint32
	for _, v := range values {
		if l > 0 {
			lowW.writeBits(uint64(v)&((uint64(1)<<l)-1), l)
		}
		high := v >> l
		for z := prevHigh; z < high; z++ {
			highW.writeBit(0)
		}
		highW.writeBit(1)
		prevHigh = high
	}

	dst = appendU32(dst, universe)
	dst = appendU32(dst, uint32(n))
	dst = appendU32(dst, l)
	lowBytes := lowW.bytes()
	highBytes := highW.bytes()
	dst = appendU32(dst, uint32(len(lowBytes)))
	dst = append(dst, lowBytes...)
	dst = appendU32(dst, uint32(len(highBytes)))
	dst = append(dst, highBytes...)
	return dst
}

func (eliasFanoCodec) Decode(src []byte, n int) ([]uint32, int, error) {
	if err := requireLen(src, 12); err != nil {
		return nil, 0, err
	}
	count := binary.LittleEndian.Uint32(src[4:])
	l := binary.LittleEndian.Uint32(src[8:])
	off := 12
	if int(count) != n {
		return nil, 0, pisaerr.Format("ef codec", fmt.Errorf("block holds %d values, expected %d", count, n))
	}
	if n == 0 {
		return nil, off, nil
	}

	if err := requireLen(src[off:], 4); err != nil {
		return nil, 0, err
	}
	lowLen := int(binary.LittleEndian.Uint32(src[off:]))
	off += 4
	if err := requireLen(src[off:], lowLen); err != nil {
		return nil, 0, err
	}
	lowR := newBitReader(src[off : off+lowLen])
	off += lowLen

	if err := requireLen(src[off:], 4); err != nil {
		return nil, 0, err
	}
	highLen := int(binary.LittleEndian.Uint32(src[off:]))
	off += 4
	if err := requireLen(src[off:], highLen); err != nil {
		return nil, 0, err
	}
	highR := newBitReader(src[off : off+highLen])
	off += highLen

	out := make([]uint32, n)
	var high uint32
	for i := 0; i < n; i++ {
		for {
			bit, err := highR.readBit()
			if err != nil {
				return nil, 0, pisaerr.Format("ef codec", fmt.Errorf("truncated high stream at value %d", i))
			}
			if bit == 1 {
				break
			}
			high++
		}
		var low uint32
		if l > 0 {
			v, err := lowR.readBits(l)
			if err != nil {
				return nil, 0, pisaerr.Format("ef codec", fmt.Errorf("truncated low stream at value %d", i))
			}
			low = uint32(v)
		}
		out[i] = (high << l) | low
	}
	return out, off, nil
}

// eliasFanoLowBits picks l = floor(log2(universe/n)), the standard
// Elias-Fano split point balancing the low (bit-packed) and high
// (unary-coded) streams.
func eliasFanoLowBits(universe, n uint32) uint32 {
	if n == 0 || universe <= n {
		return 0
	}
	ratio := universe / n
	if ratio == 0 {
		return 0
	}
	return uint32(bits.Len32(ratio)) - 1
}

func appendU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}
